package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-streamline/aiworkflow/config"
	"github.com/go-streamline/aiworkflow/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

var (
	ErrUnsupportedDriver = fmt.Errorf("unsupported database driver")
	ErrFailedToConnect   = fmt.Errorf("failed to connect to database")
)

// Open connects to the configured database and sizes the connection pool.
func Open(cfg config.Database, log *logrus.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.NewGormLogger(log, cfg.SlowThreshold, cfg.LogSQL),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToConnect, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToConnect, err)
	}

	if isMemorySQLite(cfg) {
		// every connection to :memory: is a separate database
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		maxIdle := cfg.MaxIdleConn
		if maxIdle <= 0 {
			maxIdle = 10
		}
		maxOpen := cfg.MaxOpenConn
		if maxOpen <= 0 {
			maxOpen = 40
		}
		sqlDB.SetMaxIdleConns(maxIdle)
		sqlDB.SetMaxOpenConns(maxOpen)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.PoolTimeout > 0 {
		if err = db.Use(&AcquireTimeout{Timeout: cfg.PoolTimeout}); err != nil {
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{
		"driver":        cfg.Driver,
		"max_idle_conn": cfg.MaxIdleConn,
		"max_open_conn": cfg.MaxOpenConn,
		"pool_timeout":  cfg.PoolTimeout.String(),
	}).Info("database connection pool configured")

	return db, nil
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverPostgres:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
				cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
		}
		return postgres.Open(dsn), nil
	case DriverMySQL:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
		}
		return mysql.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(cfg.DSN), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
}

func isMemorySQLite(cfg config.Database) bool {
	return cfg.Driver == DriverSQLite && strings.Contains(cfg.DSN, ":memory:")
}

// Ping checks that a connection can be acquired and used.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases every pooled connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
