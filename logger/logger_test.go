package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-streamline/aiworkflow/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestFactory_GetLoggerAddsHostAndContext(t *testing.T) {
	var buf bytes.Buffer
	f := NewFactoryWithWriter(&buf, logrus.InfoLevel)

	f.GetLogger("repository").Info("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "repository", entry["context"])
	assert.Contains(t, entry, "host")
}

func TestFactory_LevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	f := NewFactoryWithWriter(&buf, logrus.WarnLevel)

	log := f.GetLogger("x")
	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewFactory(t *testing.T) {
	f, err := NewFactory(config.Log{Level: "DEBUG", Filename: filepath.Join(t.TempDir(), "app.log")})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, f.GetLogger("x").GetLevel())

	_, err = NewFactory(config.Log{Level: "LOUD"})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	log := NewFactoryWithWriter(&buf, logrus.DebugLevel).GetLogger("gorm")
	sql := func() (string, int64) { return "SELECT 1", 1 }

	l := NewGormLogger(log, time.Second, false)
	l.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Zero(t, buf.Len(), "record not found is not an error")

	l.Trace(context.Background(), time.Now(), sql, nil)
	assert.Zero(t, buf.Len(), "fast queries are not logged without log_sql")

	l.Trace(context.Background(), time.Now().Add(-2*time.Second), sql, nil)
	assert.Contains(t, buf.String(), "slow query")
	buf.Reset()

	l.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	assert.Contains(t, buf.String(), "query failed")
	buf.Reset()

	verbose := NewGormLogger(log, time.Second, true)
	verbose.Trace(context.Background(), time.Now(), sql, nil)
	assert.True(t, strings.Contains(buf.String(), "SELECT 1"))
	buf.Reset()

	silent := verbose.LogMode(gormlogger.Silent)
	silent.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	assert.Zero(t, buf.Len())
}
