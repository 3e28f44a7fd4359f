package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound reports that no row matched the given filters
var ErrNotFound = errors.New("record not found")

// Filters is an equality-only conjunction over named columns. A nil or
// empty map matches all rows.
type Filters map[string]any

// Gateway provides generic persistence operations against the
// relational store. Every call derives its own timeout context; the
// underlying connection is scoped per call and released unconditionally
// by the pool. No operation spans a transaction with another unless a
// caller composes one explicitly.
type Gateway struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGateway creates a gateway over an established connection
func NewGateway(db *gorm.DB, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Gateway{db: db, timeout: timeout}
}

// DB exposes the underlying handle for typed repositories
func (g *Gateway) DB() *gorm.DB {
	return g.db
}

func (g *Gateway) scope(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	opCtx, cancel := context.WithTimeout(ctx, g.timeout)
	return g.db.WithContext(opCtx), cancel
}

// Create inserts the entity and fills its generated fields
func Create[T any](ctx context.Context, g *Gateway, entity *T) error {
	db, cancel := g.scope(ctx)
	defer cancel()
	return db.Create(entity).Error
}

// Read returns all rows of T matching the equality filters. Omitting
// filters returns every row.
func Read[T any](ctx context.Context, g *Gateway, filters Filters) ([]T, error) {
	db, cancel := g.scope(ctx)
	defer cancel()

	var rows []T
	query := db.Model(new(T))
	if len(filters) > 0 {
		query = query.Where(map[string]any(filters))
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ReadOne returns the single row of T matching the filters, or
// ErrNotFound when none does.
func ReadOne[T any](ctx context.Context, g *Gateway, filters Filters) (*T, error) {
	rows, err := Read[T](ctx, g, filters)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// Update applies the given fields to all rows matching the filters and
// returns the number of rows affected.
func Update[T any](ctx context.Context, g *Gateway, filters Filters, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	db, cancel := g.scope(ctx)
	defer cancel()

	result := db.Model(new(T)).Where(map[string]any(filters)).Updates(fields)
	return result.RowsAffected, result.Error
}

// Delete removes all rows matching the filters and returns the number
// of rows affected. Omitting filters removes every row.
func Delete[T any](ctx context.Context, g *Gateway, filters Filters) (int64, error) {
	db, cancel := g.scope(ctx)
	defer cancel()

	query := db
	if len(filters) > 0 {
		query = query.Where(map[string]any(filters))
	} else {
		query = query.Where("1 = 1")
	}
	result := query.Delete(new(T))
	return result.RowsAffected, result.Error
}

// Exec runs a raw statement and returns the number of rows affected
func (g *Gateway) Exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	db, cancel := g.scope(ctx)
	defer cancel()

	result := db.Exec(stmt, args...)
	return result.RowsAffected, result.Error
}
