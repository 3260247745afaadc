package emailsvc

import (
	"io"
	"log"
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lms/core"
	logsvc "github.com/trezcool/lms/services/logger"
)

func newTestConfig() *core.Config {
	return &core.Config{
		AppName:          "LMS",
		Debug:            true,
		TestMode:         true,
		DefaultFromEmail: mail.Address{Name: "LMS", Address: "noreply@lms.test"},
		FrontendBaseURL:  "http://lms.test",
	}
}

func TestConsoleServiceMock(t *testing.T) {
	conf := newTestConfig()
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	core.ParseEmailTemplates(logger)
	svc := NewConsoleServiceMock(conf, logger)

	tests := []struct {
		name     string
		msg      *core.EmailMessage
		wantSent bool
		wantText []string
		wantHTML bool
	}{
		{
			name: "templated message",
			msg: &core.EmailMessage{
				To:           []mail.Address{{Name: "Teacher", Address: "teacher@lms.test"}},
				Subject:      "New enrollment",
				TemplateName: "enrollment_created",
				TemplateData: map[string]interface{}{"StudentUsername": "student", "CourseTitle": "Algebra"},
			},
			wantSent: true,
			wantText: []string{"student just enrolled", `"Algebra"`, "http://lms.test"},
			wantHTML: true,
		},
		{
			name: "plain message",
			msg: &core.EmailMessage{
				To:      []mail.Address{{Address: "teacher@lms.test"}},
				Subject: "Hello",
				BodyStr: "plain body",
			},
			wantSent: true,
			wantText: []string{"plain body"},
		},
		{
			name:     "no recipients",
			msg:      &core.EmailMessage{Subject: "Hello", BodyStr: "plain body"},
			wantSent: false,
		},
		{
			name: "unknown template",
			msg: &core.EmailMessage{
				To:           []mail.Address{{Address: "teacher@lms.test"}},
				TemplateName: "does_not_exist",
			},
			wantSent: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc.Reset()
			svc.SendMessages(tc.msg)

			sent := svc.SentMessages()
			if !tc.wantSent {
				assert.Empty(t, sent)
				return
			}
			if assert.Len(t, sent, 1) {
				for _, s := range tc.wantText {
					assert.Contains(t, sent[0].TextContent, s)
				}
				assert.Equal(t, tc.wantHTML, sent[0].HTMLContent != "")
			}
		})
	}
}

func TestConsoleFormat(t *testing.T) {
	conf := newTestConfig()
	svc := consoleService{defaultFromEmail: conf.DefaultFromEmail, subjPrefix: "[LMS] "}

	body, err := svc.format(core.EmailMessage{
		To:          []mail.Address{{Name: "Teacher", Address: "teacher@lms.test"}},
		Subject:     "Hello",
		TextContent: "text",
		HTMLContent: "<p>html</p>",
	})
	assert.NoError(t, err)
	assert.Contains(t, body, "Subject: [LMS] Hello")
	assert.Contains(t, body, `To: "Teacher" <teacher@lms.test>`)
	assert.Contains(t, body, "text/plain")
	assert.Contains(t, body, "<p>html</p>")
}
