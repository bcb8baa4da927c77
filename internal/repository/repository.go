// Package repository provides the data access layer over gorm.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"giftcertificates/backend/internal/paging"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate key")
)

type txKey struct{}

// Transactor runs a function inside one database transaction. Repositories
// called with the context passed to fn take part in that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a Transactor backed by db.
func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or db scoped to ctx.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// translate maps gorm's sentinel errors onto the repository ones. Unique
// violations are only recognised when gorm runs with TranslateError.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

type scope = func(*gorm.DB) *gorm.DB

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsIgnoreCase matches rows whose column contains value, ignoring case.
// A nil value matches everything.
func containsIgnoreCase(column string, value *string) scope {
	return func(db *gorm.DB) *gorm.DB {
		if value == nil {
			return db
		}
		return db.Where(column+" ILIKE ?", "%"+likeEscaper.Replace(*value)+"%")
	}
}

// equals matches rows whose column equals value. A nil value matches everything.
func equals[T any](column string, value *T) scope {
	return func(db *gorm.DB) *gorm.DB {
		if value == nil {
			return db
		}
		return db.Where(column+" = ?", *value)
	}
}

// paginate counts the rows selected by filters and loads the requested page.
// The count and the page run as separate statements so neither leaks clauses
// into the other.
func paginate[T any](db *gorm.DB, p paging.Pageable, columns paging.Columns, filters []scope, loads ...scope) (paging.Page[T], error) {
	var totalItems int64
	if err := db.Model(new(T)).Scopes(filters...).Count(&totalItems).Error; err != nil {
		return paging.Page[T]{}, fmt.Errorf("failed to count rows: %w", err)
	}

	results := make([]T, 0, p.Size)
	if int64(p.Offset()) < totalItems {
		query := db.Model(new(T)).Scopes(filters...).Scopes(loads...)
		for _, expr := range columns.OrderBy(p) {
			query = query.Order(expr)
		}
		if err := query.Offset(p.Offset()).Limit(p.Size).Find(&results).Error; err != nil {
			return paging.Page[T]{}, fmt.Errorf("failed to load page: %w", err)
		}
	}

	return paging.Page[T]{
		Content:    results,
		TotalItems: totalItems,
		Page:       p.Page,
		Size:       p.Size,
	}, nil
}
