package database

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const cancelKey = "aiworkflow:statement_cancel"

// AcquireTimeout bounds how long a statement may wait for a pooled connection
// and run, for statements whose context carries no deadline of its own.
// Row streaming is left alone since its rows outlive the callback.
type AcquireTimeout struct {
	Timeout time.Duration
}

func (p *AcquireTimeout) Name() string {
	return "aiworkflow:acquire_timeout"
}

func (p *AcquireTimeout) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	if err := cb.Create().Before("gorm:create").Register("aiworkflow:deadline_create", p.before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("aiworkflow:release_create", p.after); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("aiworkflow:deadline_query", p.before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("aiworkflow:release_query", p.after); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("aiworkflow:deadline_update", p.before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("aiworkflow:release_update", p.after); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("aiworkflow:deadline_delete", p.before); err != nil {
		return err
	}
	return cb.Delete().After("gorm:delete").Register("aiworkflow:release_delete", p.after)
}

func (p *AcquireTimeout) before(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	db.Statement.Context = ctx
	db.InstanceSet(cancelKey, cancel)
}

func (p *AcquireTimeout) after(db *gorm.DB) {
	if v, ok := db.InstanceGet(cancelKey); ok {
		if cancel, ok := v.(context.CancelFunc); ok {
			cancel()
		}
	}
}
