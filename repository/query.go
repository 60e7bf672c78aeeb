package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000

	OrderAsc  = "asc"
	OrderDesc = "desc"

	fallbackSortColumn = "updated_at_time"
)

// ListOptions carries pagination and ordering for filtered listings.
type ListOptions struct {
	Limit   int
	Offset  int
	OrderBy string
	Order   string
}

// Normalize clamps the limit into [1, MaxLimit] (DefaultLimit when unset),
// raises a negative offset to zero and defaults the order to descending.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	if strings.EqualFold(o.Order, OrderAsc) {
		o.Order = OrderAsc
	} else {
		o.Order = OrderDesc
	}
	return o
}

// sortColumns maps the sort keys a caller may ask for onto columns.
type sortColumns map[string]string

// resolve picks the column and direction for key. An unknown key sorts by
// update time descending whatever the requested order.
func (s sortColumns) resolve(key string, order string) (string, bool) {
	desc := order != OrderAsc
	if key == "" {
		return fallbackSortColumn, desc
	}
	column, ok := s[key]
	if !ok {
		return fallbackSortColumn, true
	}
	return column, desc
}

// withColumnKeys accepts every column name as its own key.
func withColumnKeys(keys map[string]string) sortColumns {
	s := sortColumns{}
	for key, column := range keys {
		s[key] = column
		s[column] = column
	}
	return s
}

func paginate(query *gorm.DB, opts ListOptions, sorts sortColumns) *gorm.DB {
	opts = opts.Normalize()
	column, desc := sorts.resolve(opts.OrderBy, opts.Order)
	return query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id_str"}}).
		Limit(opts.Limit).
		Offset(opts.Offset)
}

// newestFirst orders the unbounded convenience listings.
func newestFirst(query *gorm.DB) *gorm.DB {
	return query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: fallbackSortColumn}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id_str"}})
}

func whereEquals[V any](query *gorm.DB, column string, value *V) *gorm.DB {
	if value == nil {
		return query
	}
	return query.Where(clause.Eq{Column: clause.Column{Name: column}, Value: *value})
}

func whereEqualsString(query *gorm.DB, column string, value *string) *gorm.DB {
	if value == nil || *value == "" {
		return query
	}
	return query.Where(clause.Eq{Column: clause.Column{Name: column}, Value: *value})
}

func whereContains(query *gorm.DB, column string, value *string) *gorm.DB {
	if value == nil || *value == "" {
		return query
	}
	return query.Where(clause.Like{Column: clause.Column{Name: column}, Value: "%" + *value + "%"})
}

// whereBetween adds inclusive bounds; either may be nil.
func whereBetween(query *gorm.DB, column string, after *time.Time, before *time.Time) *gorm.DB {
	if after != nil {
		query = query.Where(clause.Gte{Column: clause.Column{Name: column}, Value: after.UTC()})
	}
	if before != nil {
		query = query.Where(clause.Lte{Column: clause.Column{Name: column}, Value: before.UTC()})
	}
	return query
}

// ResultSet is a lazily evaluated query. Each call runs the query again,
// so a ResultSet can be read any number of times.
type ResultSet[T any] struct {
	query *gorm.DB
}

func newResultSet[T any](query *gorm.DB) *ResultSet[T] {
	return &ResultSet[T]{query: query.Session(&gorm.Session{})}
}

func (rs *ResultSet[T]) All(ctx context.Context) ([]*T, error) {
	records := []*T{}
	if err := rs.query.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// First returns the first record in order, or nil when there is none.
func (rs *ResultSet[T]) First(ctx context.Context) (*T, error) {
	var records []*T
	if err := rs.query.WithContext(ctx).Limit(1).Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// Each streams records to fn in order and stops at the first error fn returns.
// fn must not use the database: the rows hold a connection until Each returns.
func (rs *ResultSet[T]) Each(ctx context.Context, fn func(*T) error) error {
	db := rs.query.WithContext(ctx)
	rows, err := db.Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		rec := new(T)
		if err = db.ScanRows(rows, rec); err != nil {
			return err
		}
		if err = fn(rec); err != nil {
			return err
		}
	}
	return rows.Err()
}
