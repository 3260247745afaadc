package logsvc

import (
	"log"
	"strconv"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/lms/core"
)

// RollbarLogger reports to rollbar and mirrors every entry to a standard logger.
// Entries take a message followed by any of: an error, a map of extras, the core.Actor
// the request was made on behalf of.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

// NewRollbarLogger enables reporting only outside debug mode and when a token is configured.
func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)

	l := &RollbarLogger{std: std}
	l.Enable(!conf.Debug && conf.RollbarToken != "")
	return l
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// Close waits for queued reports to be sent.
func (l RollbarLogger) Close() {
	rollbar.Close()
}

// entry is a log call split into what rollbar understands and the acting user.
type entry struct {
	items []interface{}
	actor *core.Actor
}

func newEntry(msg string, args []interface{}) entry {
	e := entry{items: []interface{}{msg}}
	var extras map[string]interface{}
	for _, arg := range args {
		switch v := arg.(type) {
		case core.Actor:
			if e.actor == nil {
				e.actor = &v
			}
		case map[string]interface{}:
			extras = v
		default:
			e.items = append(e.items, arg)
		}
	}
	if e.actor != nil {
		withRole := map[string]interface{}{"actor_role": e.actor.Role.String()}
		for k, v := range extras {
			withRole[k] = v
		}
		extras = withRole
	}
	if extras != nil {
		e.items = append(e.items, extras)
	}
	return e
}

func (l RollbarLogger) report(level, msg string, args []interface{}) {
	e := newEntry(msg, args)
	if e.actor != nil {
		rollbar.SetPerson(strconv.Itoa(e.actor.ID), e.actor.Username, e.actor.Email)
	} else {
		rollbar.ClearPerson()
	}
	rollbar.Log(level, e.items...)

	l.std.Printf("[%s] %s", strings.ToUpper(level), msg)
	for _, item := range e.items[1:] {
		l.std.Printf("  %+v", item)
	}
	if e.actor != nil {
		l.std.Printf("  actor: %s #%d (%s)", e.actor.Username, e.actor.ID, e.actor.Role)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) { l.report(rollbar.DEBUG, msg, args) }
func (l RollbarLogger) Info(msg string, args ...interface{})  { l.report(rollbar.INFO, msg, args) }
func (l RollbarLogger) Warn(msg string, args ...interface{})  { l.report(rollbar.WARN, msg, args) }
func (l RollbarLogger) Error(msg string, args ...interface{}) { l.report(rollbar.ERR, msg, args) }

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.report(rollbar.CRIT, msg, args)
	rollbar.Close()
	l.std.Fatal(msg)
}
