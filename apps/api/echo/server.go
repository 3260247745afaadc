package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/category"
	"github.com/trezcool/lms/core/content"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/enrollment"
	"github.com/trezcool/lms/core/qa"
	"github.com/trezcool/lms/core/stats"
	"github.com/trezcool/lms/core/user"
)

type (
	Deps struct {
		Logger        core.Logger
		Translator    ut.Translator
		UserSvc       *user.Service
		CategorySvc   *category.Service
		CourseSvc     *course.Service
		ContentSvc    *content.Service
		EnrollmentSvc *enrollment.Service
		QASvc         *qa.Service
		StatsSvc      *stats.Service
	}

	Server struct {
		conf     *core.Config
		deps     *Deps
		app      *echo.Echo
		shutdown chan os.Signal
		errors   chan error
	}
)

// NewServer sets up the API. A nil shutdown channel gets replaced by one
// that only receives the signals sent by Server.SignalShutdown.
func NewServer(conf *core.Config, shutdown chan os.Signal, deps *Deps) *Server {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
	}
	s := &Server{
		conf:     conf,
		deps:     deps,
		app:      echo.New(),
		shutdown: shutdown,
		errors:   make(chan error, 1),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.Server.ReadTimeout = s.conf.Server.ReadTimeout
	s.app.Server.WriteTimeout = s.conf.Server.WriteTimeout

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !s.conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.conf.Debug || s.conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Debug = s.conf.Debug && !s.conf.TestMode

	s.app.GET("/", home)

	g := s.app.Group("/api", middleware.JWTWithConfig(newJWTConfig(s.conf)), actorMiddleware(s.deps.UserSvc))

	registerCategoryAPI(g, s.deps.CategorySvc)
	registerCourseAPI(g, s.deps.CourseSvc)
	registerContentAPI(g, s.deps.ContentSvc)
	registerEnrollmentAPI(g, s.deps.EnrollmentSvc)
	registerQuestionAPI(g, s.deps.QASvc)
	registerAdminAPI(g, s.deps.UserSvc, s.deps.StatsSvc)
}

// Start listens for requests; a listener failure is sent to Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the owner of the server to shut it down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // a shutdown is already pending
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the LMS API!")
}
