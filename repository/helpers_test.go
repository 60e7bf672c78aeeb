package repository

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/go-streamline/aiworkflow/config"
	"github.com/go-streamline/aiworkflow/logger"
	"github.com/go-streamline/aiworkflow/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// stepClock returns a new whole second on every call.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *stepClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func (c *stepClock) peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

type stores struct {
	clock       *stepClock
	db          *gorm.DB
	definitions *WorkflowDefinitionStore
	jobs        *WorkflowJobStore
	providers   *ModelProviderStore
	models      *DeepLearningModelStore
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func testLogFactory() *logger.Factory {
	return logger.NewFactoryWithWriter(io.Discard, logrus.DebugLevel)
}

func setupStores(t *testing.T, extra ...Option) *stores {
	db := setupTestDB(t)
	clock := newStepClock()
	opts := append([]Option{WithClock(clock.now)}, extra...)
	logFactory := testLogFactory()

	definitions, err := NewWorkflowDefinitionStore(db, logFactory, opts...)
	require.NoError(t, err)
	jobs, err := NewWorkflowJobStore(db, logFactory, opts...)
	require.NoError(t, err)
	providers, err := NewModelProviderStore(db, logFactory, opts...)
	require.NoError(t, err)
	dlModels, err := NewDeepLearningModelStore(db, logFactory, opts...)
	require.NoError(t, err)

	return &stores{
		clock:       clock,
		db:          db,
		definitions: definitions,
		jobs:        jobs,
		providers:   providers,
		models:      dlModels,
	}
}

func withTestCache() Option {
	return WithCache(config.Cache{Enabled: true, NumCounters: 1000, MaxCost: 100, BufferItems: 64, TTL: time.Minute})
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func ids[T any, PT Entity[T]](records []*T) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, PT(r).GetID())
	}
	return out
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}
