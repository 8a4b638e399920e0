// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/campsite/internal/models"
)

var (
	// ErrDuplicateDate is returned when a write would place a second
	// reservation on an already occupied date.
	ErrDuplicateDate = errors.New("date already occupied")

	// ErrNotFound is returned when a row addressed by ID no longer exists.
	ErrNotFound = errors.New("not found")
)

// Reader holds the read operations available both inside and outside a
// transaction.
type Reader interface {
	// ListDays returns every reserved day with from <= date <= to, ordered by date.
	ListDays(ctx context.Context, from, to time.Time) ([]models.ReservationDay, error)

	// ListGroupDays returns the days of one reservation group, ordered by date.
	// An unknown group yields an empty slice and no error.
	ListGroupDays(ctx context.Context, groupID string) ([]models.ReservationDay, error)
}

// Tx is a unit of work against the day-slot table. Every call joins the
// enclosing transaction; nothing is visible to other readers until it
// commits.
type Tx interface {
	Reader

	// InsertDay stores a new day and sets day.ID.
	// Returns ErrDuplicateDate if day.Date is already occupied.
	InsertDay(ctx context.Context, day *models.ReservationDay) error

	// RewriteDate moves the row with the given ID to a new date.
	// Returns ErrDuplicateDate if date is occupied and ErrNotFound if the
	// row does not exist.
	RewriteDate(ctx context.Context, id int64, date time.Time) error

	// DeleteGroupDays removes every day of a group and reports how many
	// rows were removed.
	DeleteGroupDays(ctx context.Context, groupID string) (int, error)
}

// Store defines the interface for day-slot storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the booking engine.
type Store interface {
	Reader

	// WithinTx runs fn inside a single transaction. The transaction commits
	// if fn returns nil and rolls back otherwise, including when fn panics.
	// The error returned by fn is passed through unchanged.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	// Close releases any resources held by the store.
	Close() error
}
