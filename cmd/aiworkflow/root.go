package main

import (
	"github.com/go-streamline/aiworkflow/config"
	"github.com/go-streamline/aiworkflow/database"
	"github.com/go-streamline/aiworkflow/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type rootOptions struct {
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "aiworkflow",
		Short: "AI WorkFlow registry service",
		Long: `aiworkflow stores workflow definitions, workflow jobs, model providers
and deep learning models behind a REST API.

Examples:
  aiworkflow serve --config config.yaml
  aiworkflow migrate
  AIWORKFLOW_DATABASE_DRIVER=postgres AIWORKFLOW_DATABASE_DSN=... aiworkflow serve`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (default is ./config.yaml or ./config/config.yaml)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newDropTablesCommand(opts))
	return cmd
}

// environment is what every command needs before it can do work.
type environment struct {
	cfg     *config.Config
	loggers *logger.Factory
	log     *logrus.Logger
	db      *gorm.DB
}

func setup(opts *rootOptions) (*environment, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}
	loggers, err := logger.NewFactory(cfg.Log)
	if err != nil {
		return nil, err
	}
	log := loggers.GetLogger("aiworkflow")

	db, err := database.Open(cfg.Database, loggers.GetLogger("database"))
	if err != nil {
		return nil, err
	}
	return &environment{cfg: cfg, loggers: loggers, log: log, db: db}, nil
}

func (e *environment) close() {
	if err := database.Close(e.db); err != nil {
		e.log.WithError(err).Warn("failed to close database")
	}
}
