package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/campsite/internal/calendar"
	"github.com/mmynk/campsite/internal/models"
	"github.com/mmynk/campsite/internal/storage"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var _ storage.Tx = (*sqliteTx)(nil)

// sqliteTx implements storage.Tx on top of an open *sql.Tx.
type sqliteTx struct {
	tx *sql.Tx
}

const selectDays = `SELECT id, group_id, name, last_name, email, date FROM reservation_days`

// InsertDay persists one reserved day.
func (t *sqliteTx) InsertDay(ctx context.Context, day *models.ReservationDay) error {
	res, err := t.tx.ExecContext(ctx,
		"INSERT INTO reservation_days (group_id, name, last_name, email, date) VALUES (?, ?, ?, ?, ?)",
		day.GroupID, day.Occupant.Name, day.Occupant.LastName, day.Occupant.Email, calendar.Format(day.Date),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to insert day %s: %w", calendar.Format(day.Date), storage.ErrDuplicateDate)
		}
		return fmt.Errorf("failed to insert day: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted day id: %w", err)
	}
	day.ID = id

	return nil
}

// RewriteDate moves one row to another date.
func (t *sqliteTx) RewriteDate(ctx context.Context, id int64, date time.Time) error {
	res, err := t.tx.ExecContext(ctx,
		"UPDATE reservation_days SET date = ? WHERE id = ?",
		calendar.Format(date), id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to move day %d to %s: %w", id, calendar.Format(date), storage.ErrDuplicateDate)
		}
		return fmt.Errorf("failed to move day: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("day %d: %w", id, storage.ErrNotFound)
	}

	return nil
}

// DeleteGroupDays removes every day of a group.
func (t *sqliteTx) DeleteGroupDays(ctx context.Context, groupID string) (int, error) {
	res, err := t.tx.ExecContext(ctx, "DELETE FROM reservation_days WHERE group_id = ?", groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete group days: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return int(n), nil
}

func (t *sqliteTx) ListDays(ctx context.Context, from, to time.Time) ([]models.ReservationDay, error) {
	return listDays(ctx, t.tx, from, to)
}

func (t *sqliteTx) ListGroupDays(ctx context.Context, groupID string) ([]models.ReservationDay, error) {
	return listGroupDays(ctx, t.tx, groupID)
}

// Dates are stored as ISO text, so lexical comparison matches date order.
func listDays(ctx context.Context, q querier, from, to time.Time) ([]models.ReservationDay, error) {
	rows, err := q.QueryContext(ctx,
		selectDays+" WHERE date >= ? AND date <= ? ORDER BY date",
		calendar.Format(from), calendar.Format(to),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}
	return scanDays(rows)
}

func listGroupDays(ctx context.Context, q querier, groupID string) ([]models.ReservationDay, error) {
	rows, err := q.QueryContext(ctx,
		selectDays+" WHERE group_id = ? ORDER BY date",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list group days: %w", err)
	}
	return scanDays(rows)
}

func scanDays(rows *sql.Rows) ([]models.ReservationDay, error) {
	defer rows.Close()

	var days []models.ReservationDay
	for rows.Next() {
		var (
			day  models.ReservationDay
			date string
		)
		if err := rows.Scan(&day.ID, &day.GroupID, &day.Occupant.Name, &day.Occupant.LastName, &day.Occupant.Email, &date); err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}

		parsed, err := calendar.Parse(date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored date: %w", err)
		}
		day.Date = parsed

		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate days: %w", err)
	}

	return days, nil
}
