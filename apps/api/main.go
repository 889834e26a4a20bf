package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	echoapi "github.com/trezcool/sessionbook/apps/api/echo"
	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/contact"
	"github.com/trezcool/sessionbook/core/school"
	"github.com/trezcool/sessionbook/core/session"
	"github.com/trezcool/sessionbook/core/sessionedit"
	"github.com/trezcool/sessionbook/core/user"
	emailsvc "github.com/trezcool/sessionbook/services/email"
	logsvc "github.com/trezcool/sessionbook/services/logger"
	"github.com/trezcool/sessionbook/storage/database"
	dummydb "github.com/trezcool/sessionbook/storage/database/dummy"
	sqlxrepos "github.com/trezcool/sessionbook/storage/database/sqlx"
)

type repositories struct {
	schools  school.Repository
	users    user.Repository
	sessions session.Repository
	edits    sessionedit.Repository
	contacts contact.Repository
	db       echoapi.Pinger
	close    func() error
}

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	if conf.Server.APIToken == "" {
		conf.Server.APIToken = uuid.NewString()
		logger.Warn(fmt.Sprintf("API_TOKEN not set, using generated token %q", conf.Server.APIToken))
	}

	// set up DB
	repos, err := setUpRepositories(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = repos.close(); err != nil {
			dbLogger.Error("Failed to close", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	if err = core.ParseEmailTemplates(); err != nil {
		logger.Fatal(fmt.Sprintf("parsing email templates: %v", err), err)
	}

	// =========================================================================
	// Start Debug Service
	//
	// /debug/vars - Added to the default mux by importing the expvar package.
	// /metrics - Prometheus collectors registered by the API middleware.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	http.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			DB:         repos.db,
			SchoolSvc:  school.NewService(repos.schools),
			UserSvc:    user.NewService(repos.users),
			SessionSvc: session.NewService(repos.sessions),
			EditSvc:    sessionedit.NewService(repos.edits),
			ContactSvc: contact.NewService(repos.contacts, mailSvc, conf.ContactRecipients),
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		logger.Info(fmt.Sprintf("API listening on %s", conf.Server.Address))
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// setUpRepositories picks the storage backend from the DATABASE_URL scheme.
func setUpRepositories(conf *core.Config) (*repositories, error) {
	engine, _, err := database.ParseURL(conf.Database.URL)
	if err != nil {
		return nil, err
	}

	if engine == database.EngineMemory {
		db, err := dummydb.Open()
		if err != nil {
			return nil, err
		}
		return &repositories{
			schools:  dummydb.NewSchoolRepository(db),
			users:    dummydb.NewUserRepository(db),
			sessions: dummydb.NewSessionRepository(db),
			edits:    dummydb.NewSessionEditRepository(db),
			contacts: dummydb.NewContactRepository(db),
			close:    func() error { return nil },
		}, nil
	}

	db, err := database.Connect(context.Background(), conf)
	if err != nil {
		return nil, err
	}
	if conf.Database.AutoMigrate {
		if err = database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return &repositories{
		schools:  sqlxrepos.NewSchoolRepository(db),
		users:    sqlxrepos.NewUserRepository(db),
		sessions: sqlxrepos.NewSessionRepository(db),
		edits:    sqlxrepos.NewSessionEditRepository(db),
		contacts: sqlxrepos.NewContactRepository(db),
		db:       db,
		close:    db.Close,
	}, nil
}
