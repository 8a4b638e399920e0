// Package postgres provides a PostgreSQL-backed implementation of the storage.Store interface.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmynk/campsite/internal/calendar"
	"github.com/mmynk/campsite/internal/models"
	"github.com/mmynk/campsite/internal/storage"
)

var (
	_ storage.Store = (*Store)(nil)
	_ storage.Tx    = (*pgTx)(nil)
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Store implements storage.Store on a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to databaseURL, verifies the connection and applies the schema.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConnLifetime = 5 * time.Minute
	cfg.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// WithinTx runs fn in a single transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(context.WithoutCancel(ctx))

	if err := fn(ctx, &pgTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (s *Store) ListDays(ctx context.Context, from, to time.Time) ([]models.ReservationDay, error) {
	return listDays(ctx, s.pool, from, to)
}

func (s *Store) ListGroupDays(ctx context.Context, groupID string) ([]models.ReservationDay, error) {
	return listGroupDays(ctx, s.pool, groupID)
}

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) InsertDay(ctx context.Context, day *models.ReservationDay) error {
	err := t.tx.QueryRow(ctx,
		`INSERT INTO reservation_days (group_id, name, last_name, email, date) VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		day.GroupID, day.Occupant.Name, day.Occupant.LastName, day.Occupant.Email, calendar.Day(day.Date),
	).Scan(&day.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert day %s: %w", calendar.Format(day.Date), storage.ErrDuplicateDate)
		}
		return fmt.Errorf("insert day: %w", err)
	}
	return nil
}

func (t *pgTx) RewriteDate(ctx context.Context, id int64, date time.Time) error {
	tag, err := t.tx.Exec(ctx, `UPDATE reservation_days SET date=$1 WHERE id=$2`, calendar.Day(date), id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("move day %d to %s: %w", id, calendar.Format(date), storage.ErrDuplicateDate)
		}
		return fmt.Errorf("move day: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("day %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (t *pgTx) DeleteGroupDays(ctx context.Context, groupID string) (int, error) {
	tag, err := t.tx.Exec(ctx, `DELETE FROM reservation_days WHERE group_id=$1`, groupID)
	if err != nil {
		return 0, fmt.Errorf("delete group days: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (t *pgTx) ListDays(ctx context.Context, from, to time.Time) ([]models.ReservationDay, error) {
	return listDays(ctx, t.tx, from, to)
}

func (t *pgTx) ListGroupDays(ctx context.Context, groupID string) ([]models.ReservationDay, error) {
	return listGroupDays(ctx, t.tx, groupID)
}

const selectDays = `SELECT id, group_id, name, last_name, email, date FROM reservation_days`

func listDays(ctx context.Context, q querier, from, to time.Time) ([]models.ReservationDay, error) {
	rows, err := q.Query(ctx, selectDays+` WHERE date BETWEEN $1 AND $2 ORDER BY date`, calendar.Day(from), calendar.Day(to))
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	return collectDays(rows)
}

func listGroupDays(ctx context.Context, q querier, groupID string) ([]models.ReservationDay, error) {
	rows, err := q.Query(ctx, selectDays+` WHERE group_id=$1 ORDER BY date`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group days: %w", err)
	}
	return collectDays(rows)
}

func collectDays(rows pgx.Rows) ([]models.ReservationDay, error) {
	days, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ReservationDay, error) {
		var d models.ReservationDay
		err := row.Scan(&d.ID, &d.GroupID, &d.Occupant.Name, &d.Occupant.LastName, &d.Occupant.Email, &d.Date)
		d.Date = calendar.Day(d.Date)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan days: %w", err)
	}
	return days, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
