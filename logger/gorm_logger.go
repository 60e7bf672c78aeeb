package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's statement log through logrus.
// Record-not-found is expected on lookups and is never logged as an error.
type GormLogger struct {
	log           logrus.FieldLogger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger logs every statement at debug when logSQL is set, otherwise only
// slow statements and failures.
func NewGormLogger(log logrus.FieldLogger, slowThreshold time.Duration, logSQL bool) *GormLogger {
	level := gormlogger.Warn
	if logSQL {
		level = gormlogger.Info
	}
	return &GormLogger{log: log, level: level, slowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Infof(msg, args...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warnf(msg, args...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Errorf(msg, args...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.WithError(err).WithFields(l.fields(elapsed, sql, rows)).Error("query failed")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.WithFields(l.fields(elapsed, sql, rows)).Warn(fmt.Sprintf("slow query over %s", l.slowThreshold))
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.log.WithFields(l.fields(elapsed, sql, rows)).Debug("query")
	}
}

func (l *GormLogger) fields(elapsed time.Duration, sql string, rows int64) logrus.Fields {
	return logrus.Fields{
		"elapsed_ms": float64(elapsed.Microseconds()) / 1000,
		"rows":       rows,
		"sql":        sql,
	}
}
