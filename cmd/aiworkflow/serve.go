package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/go-streamline/aiworkflow/api"
	"github.com/go-streamline/aiworkflow/config"
	"github.com/go-streamline/aiworkflow/database"
	"github.com/go-streamline/aiworkflow/repository"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(opts)
			if err != nil {
				return err
			}
			defer env.close()
			return serve(cmd.Context(), env)
		},
	}
}

func initSentry(cfg *config.Config) error {
	if cfg.Sentry.DSN == "" {
		return nil
	}
	rate := cfg.Sentry.TracesSampleRate
	if rate == 0 {
		rate = 1.0
		if cfg.App.IsProduction() {
			rate = 0.1
		}
	}
	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.App.Environment,
		Release:          fmt.Sprintf("%s@%s", cfg.App.Name, cfg.App.Version),
		TracesSampleRate: rate,
		AttachStacktrace: true,
	})
}

func newHandler(env *environment) (*api.Handler, error) {
	opts := []repository.Option{
		repository.WithCache(env.cfg.Cache),
		repository.WithDefaultOwner(env.cfg.App.DefaultOwner),
		repository.WithPoolTimeout(env.cfg.Database.PoolTimeout),
	}
	definitions, err := repository.NewWorkflowDefinitionStore(env.db, env.loggers, opts...)
	if err != nil {
		return nil, err
	}
	jobs, err := repository.NewWorkflowJobStore(env.db, env.loggers, opts...)
	if err != nil {
		return nil, err
	}
	providers, err := repository.NewModelProviderStore(env.db, env.loggers, opts...)
	if err != nil {
		return nil, err
	}
	dlModels, err := repository.NewDeepLearningModelStore(env.db, env.loggers, opts...)
	if err != nil {
		return nil, err
	}
	return api.NewHandler(env.cfg.App, api.Stores{
		Definitions: definitions,
		Jobs:        jobs,
		Providers:   providers,
		Models:      dlModels,
		Schema:      database.NewSchemaManager(env.db),
	}, env.loggers.GetLogger("api")), nil
}

func serve(ctx context.Context, env *environment) error {
	cfg := env.cfg
	log := env.log

	if err := initSentry(cfg); err != nil {
		log.WithError(err).Warn("sentry disabled")
	} else if cfg.Sentry.DSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	if cfg.App.IsDevelopment() {
		tables, err := database.NewSchemaManager(env.db).CreateTables(ctx)
		if err != nil {
			return err
		}
		log.WithField("tables", tables).Info("tables migrated")
	}

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	handler, err := newHandler(env)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.App.Addr(),
		Handler:      api.NewRouter(cfg, handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"address":     server.Addr,
			"environment": cfg.App.Environment,
			"version":     cfg.App.Version,
		}).Info("server starting")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-shutdown:
		log.WithField("signal", sig.String()).Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}
	log.Info("server stopped")
	return nil
}
