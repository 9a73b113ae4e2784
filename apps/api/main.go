package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // register /debug/pprof handlers
	"time"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/apps/api/echo"
	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core"
	"github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/core/analytics"
	aisvc "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/services/ai"
	emailsvc "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/services/email"
	logsvc "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/services/logger"
	inmemdb "github.com/Santoshrachakonda13/Ai-Skill-Gap-Analysis-Tool/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up logger
	sugar, err := logsvc.NewZap(conf.Debug)
	if err != nil {
		log.Fatalf("setting up logger: %v", err)
	}
	logger := logsvc.NewRollbarLogger(sugar, conf)
	defer logger.Sync()

	// set up store
	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening store: %v", err), err)
	}
	inmemdb.Seed(db, time.Now())

	// set up services
	var mailSvc core.EmailService
	if conf.Debug || conf.SendgridApiKey == "" {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	engine := aisvc.NewMockEngine(aisvc.NewRandSource(conf.AI.Seed))
	svc := analytics.NewService(inmemdb.NewRepository(db), engine, mailSvc, logger, conf)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	analytics.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			Svc:        svc,
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
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
