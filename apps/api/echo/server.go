package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/contact"
	"github.com/trezcool/sessionbook/core/school"
	"github.com/trezcool/sessionbook/core/session"
	"github.com/trezcool/sessionbook/core/sessionedit"
	"github.com/trezcool/sessionbook/core/user"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		DB         Pinger // optional, checked by /health
		SchoolSvc  *school.Service
		UserSvc    *user.Service
		SessionSvc *session.Service
		EditSvc    *sessionedit.Service
		ContactSvc *contact.Service
		Validate   *validator.Validate
		Translator ut.Translator
	}

	Pinger interface {
		PingContext(ctx context.Context) error
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	s.app.Use(metricsMiddleware())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)
	s.app.GET("/health", s.health)

	// every entity endpoint requires the API token
	ag := s.app.Group("", tokenAuthMiddleware(conf.Server.APIToken))

	registerSchoolAPI(ag, s.deps.SchoolSvc, s.deps.Validate)
	registerUserAPI(ag, s.deps.UserSvc, s.deps.Validate)
	registerSessionAPI(ag, s.deps.SessionSvc, s.deps.EditSvc, s.deps.Validate)
	registerSessionEditAPI(ag, s.deps.EditSvc, s.deps.Validate)
	registerContactAPI(ag, s.deps.ContactSvc, s.deps.Validate)
}

// Start listens on the configured address. Errors other than a clean shutdown are sent to Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the owner of the Server to shut it down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signaled
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
