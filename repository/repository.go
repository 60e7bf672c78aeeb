package repository

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-streamline/aiworkflow/config"
	"github.com/go-streamline/aiworkflow/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// LoggerFactory hands out named loggers.
type LoggerFactory interface {
	GetLogger(name string) *logrus.Logger
}

// Entity is satisfied by *T when T embeds models.Base.
type Entity[T any] interface {
	*T
	models.Record
}

// Patch is a sparse update that reports the columns it changed.
type Patch[PT any] interface {
	Apply(PT) []string
}

// Repository implements identity lookup, owner listing, writes and deletes
// for one record kind. Every write runs in its own transaction.
type Repository[T any, PT Entity[T]] struct {
	db           *gorm.DB
	log          *logrus.Logger
	cache        *recordCache[T]
	now          func() time.Time
	defaultOwner string
	poolTimeout  time.Duration
	table        string
	// writes counts cache invalidations; a fill started before one is discarded.
	writes atomic.Uint64
}

type Option func(*options)

type options struct {
	cache        *config.Cache
	now          func() time.Time
	defaultOwner string
	poolTimeout  time.Duration
}

// WithCache enables the read cache for lookups by id.
func WithCache(cfg config.Cache) Option {
	return func(o *options) {
		if cfg.Enabled {
			o.cache = &cfg
		}
	}
}

// WithClock replaces the clock used for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithPoolTimeout bounds each transaction, including the wait for a pooled
// connection, when the caller's context has no deadline.
func WithPoolTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.poolTimeout = timeout
	}
}

// WithDefaultOwner sets the owner given to records created without one.
func WithDefaultOwner(owner string) Option {
	return func(o *options) {
		o.defaultOwner = owner
	}
}

func NewRepository[T any, PT Entity[T]](db *gorm.DB, logFactory LoggerFactory, opts ...Option) (*Repository[T, PT], error) {
	o := &options{now: time.Now, defaultOwner: models.DefaultOwner}
	for _, opt := range opts {
		opt(o)
	}

	table := PT(new(T)).TableName()
	r := &Repository[T, PT]{
		db:           db,
		log:          logFactory.GetLogger(fmt.Sprintf("repository-%d", xxhash.Sum64String(table))),
		now:          o.now,
		defaultOwner: o.defaultOwner,
		poolTimeout:  o.poolTimeout,
		table:        table,
	}
	if o.cache != nil {
		c, err := newRecordCache[T](*o.cache, table)
		if err != nil {
			return nil, err
		}
		r.cache = c
	}
	return r, nil
}

// Get looks a record up by id regardless of owner or deleted flag.
// A missing record is reported as nil, nil.
func (r *Repository[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	if r.cache != nil {
		if cached, ok := r.cache.get(ctx, id); ok {
			return cached, nil
		}
	}

	generation := r.writes.Load()
	rec, err := r.lookup(r.db.WithContext(ctx), id)
	if err != nil || rec == nil {
		return nil, err
	}

	if r.cache != nil {
		r.fill(ctx, id, rec, generation)
	}
	return rec, nil
}

// ListByOwner returns every record of owner, deleted ones included, oldest first.
func (r *Repository[T, PT]) ListByOwner(ctx context.Context, owner string) ([]*T, error) {
	var records []*T
	err := r.db.WithContext(ctx).
		Where("user_id_str = ?", owner).
		Order("created_at_time ASC").
		Order("id_str ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Create stamps identity, ownership and audit fields and inserts rec.
func (r *Repository[T, PT]) Create(ctx context.Context, rec *T) (*T, error) {
	err := r.transaction(ctx, "create", func(tx *gorm.DB) error {
		return r.insert(tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Update applies patch to the stored record and returns the persisted result.
// The update timestamp is refreshed even when the patch is empty.
func (r *Repository[T, PT]) Update(ctx context.Context, id string, patch Patch[PT]) (*T, error) {
	return r.modify(ctx, "update", id, func(rec PT) []string {
		return patch.Apply(rec)
	})
}

// SoftDelete flags the record as deleted. Deleting twice succeeds.
func (r *Repository[T, PT]) SoftDelete(ctx context.Context, id string) (*T, error) {
	return r.modify(ctx, "soft_delete", id, func(rec PT) []string {
		rec.Meta().Deleted = true
		return []string{"is_deleted_flag"}
	})
}

// HardDelete removes the row. Deleting a missing id is not an error.
func (r *Repository[T, PT]) HardDelete(ctx context.Context, id string) error {
	err := r.transaction(ctx, "hard_delete", func(tx *gorm.DB) error {
		return tx.Delete(PT(new(T)), "id_str = ?", id).Error
	})
	if err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *Repository[T, PT]) modify(ctx context.Context, op string, id string, change func(PT) []string) (*T, error) {
	var result *T
	err := r.transaction(ctx, op, func(tx *gorm.DB) error {
		rec, err := r.lookup(tx, id)
		if err != nil || rec == nil {
			return err
		}

		columns := change(PT(rec))
		PT(rec).Meta().UpdatedAt = r.timestamp()
		columns = append(columns, "updated_at_time")

		if err = tx.Model(PT(rec)).Select(columns).Updates(PT(rec)).Error; err != nil {
			return err
		}
		result, err = r.lookup(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return result, nil
}

func (r *Repository[T, PT]) insert(tx *gorm.DB, rec *T) error {
	meta := PT(rec).Meta()
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.Owner == "" {
		meta.Owner = r.defaultOwner
	}
	meta.Deleted = false
	now := r.timestamp()
	meta.CreatedAt = now
	meta.UpdatedAt = now
	return tx.Create(PT(rec)).Error
}

func (r *Repository[T, PT]) lookup(db *gorm.DB, id string) (*T, error) {
	return lookupByID[T](db, id)
}

// lookupByID finds any record kind by id, returning nil, nil when absent.
func lookupByID[T any](db *gorm.DB, id string) (*T, error) {
	var rec T
	err := db.First(&rec, "id_str = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// transaction commits when fn returns nil and rolls back otherwise,
// returning fn's error unchanged.
func (r *Repository[T, PT]) transaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	if _, ok := ctx.Deadline(); !ok && r.poolTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.poolTimeout)
		defer cancel()
	}
	err := r.db.WithContext(ctx).Transaction(fn)
	if err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{
			"table":     r.table,
			"operation": op,
		}).Warn("transaction rolled back")
	}
	return err
}

// fill caches rec unless a write was invalidated since generation was read.
// The check is repeated after the set because an invalidation can land between
// the first check and the set.
func (r *Repository[T, PT]) fill(ctx context.Context, id string, rec *T, generation uint64) {
	if r.writes.Load() != generation {
		return
	}
	if err := r.cache.set(ctx, id, *rec); err != nil {
		r.log.WithError(err).WithField("id", id).Debug("could not cache record")
		return
	}
	if r.writes.Load() != generation {
		r.invalidate(ctx, id)
	}
}

func (r *Repository[T, PT]) invalidate(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.writes.Add(1)
	if err := r.cache.invalidate(ctx, id); err != nil {
		r.log.WithError(err).WithField("id", id).Warn("could not invalidate cached record")
	}
}

// timestamp is truncated to the precision every supported database keeps.
func (r *Repository[T, PT]) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

// scoped starts a query over the live records of owner.
func (r *Repository[T, PT]) scoped(owner string) *gorm.DB {
	return r.db.Model(PT(new(T))).Where("user_id_str = ? AND is_deleted_flag = ?", owner, false)
}
