// Package booking is the reservation engine for the campsite: it turns date
// ranges into day claims and keeps every reservation all-or-nothing.
//
// The store's per-date uniqueness constraint decides who gets a day when
// requests race. The engine never relies on a read-then-write check for
// correctness; reads before a write only produce an earlier, friendlier
// conflict.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mmynk/campsite/internal/calendar"
	"github.com/mmynk/campsite/internal/models"
	"github.com/mmynk/campsite/internal/storage"
)

const tracerName = "github.com/mmynk/campsite/internal/booking"

// CreateInput is a request for a new reservation.
type CreateInput struct {
	Occupant models.Occupant
	Start    time.Time
	End      time.Time
}

// UpdateInput moves a reservation to a new range of the same length.
type UpdateInput struct {
	Start time.Time
	End   time.Time
}

// Manager creates, shifts and cancels reservations.
type Manager struct {
	store  storage.Store
	policy Policy
	now    func() time.Time
	loc    *time.Location
	newID  func() string
	tracer trace.Tracer
}

// Option configures a Manager.
type Option func(*Manager)

// WithPolicy replaces DefaultPolicy.
func WithPolicy(p Policy) Option {
	return func(m *Manager) { m.policy = p }
}

// WithClock sets the source of "now" used for the advance-window rule.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLocation sets the time zone in which "today" is observed.
func WithLocation(loc *time.Location) Option {
	return func(m *Manager) { m.loc = loc }
}

// WithIDGenerator replaces the UUID group ID generator.
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// New returns a Manager over store.
func New(store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		policy: DefaultPolicy(),
		now:    time.Now,
		loc:    time.UTC,
		newID:  uuid.NewString,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Today returns the current calendar date in the manager's location.
func (m *Manager) Today() time.Time {
	return calendar.Today(m.now(), m.loc)
}

// ValidateRange checks start..end against the booking policy.
func (m *Manager) ValidateRange(start, end time.Time) error {
	return m.policy.CheckRange(m.Today(), calendar.Day(start), calendar.Day(end))
}

// Create claims every day from in.Start to in.End for a new reservation.
// Either all days are claimed or none are; if any day is taken the call
// returns ErrConflict.
func (m *Manager) Create(ctx context.Context, in CreateInput) (_ *models.Reservation, err error) {
	ctx, span := m.tracer.Start(ctx, "booking.Create")
	defer func() { endSpan(span, err) }()

	if in.Start.IsZero() || in.End.IsZero() {
		return nil, newValidationError(RuleDatesRequired, "both start and end dates are required to create a booking.")
	}
	start, end := calendar.Day(in.Start), calendar.Day(in.End)

	if err := m.ValidateRange(start, end); err != nil {
		return nil, err
	}
	if err := validateOccupant(in.Occupant); err != nil {
		return nil, err
	}

	groupID := m.newID()
	span.SetAttributes(
		attribute.String("booking.group_id", groupID),
		attribute.String("booking.from", calendar.Format(start)),
		attribute.String("booking.to", calendar.Format(end)),
	)

	dates := calendar.Span(start, end)
	rows := make([]models.ReservationDay, len(dates))
	for i, date := range dates {
		rows[i] = models.ReservationDay{GroupID: groupID, Occupant: in.Occupant, Date: date}
	}

	err = m.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		taken, err := tx.ListDays(ctx, start, end)
		if err != nil {
			return err
		}
		if len(taken) > 0 {
			return fmt.Errorf("%d requested day(s) already held: %w", len(taken), storage.ErrDuplicateDate)
		}

		for i := range rows {
			if err := tx.InsertDay(ctx, &rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// The claim is rolled back as a whole whatever the cause; the
		// caller can retry, possibly with other dates.
		slog.Warn("Reservation claim failed",
			"group_id", groupID,
			"from", calendar.Format(start),
			"to", calendar.Format(end),
			"error", err,
		)
		return nil, ErrConflict
	}

	return models.NewReservation(rows), nil
}

// Get returns the reservation with the given group ID.
func (m *Manager) Get(ctx context.Context, groupID string) (_ *models.Reservation, err error) {
	ctx, span := m.tracer.Start(ctx, "booking.Get", trace.WithAttributes(attribute.String("booking.group_id", groupID)))
	defer func() { endSpan(span, err) }()

	if groupID == "" {
		return nil, ErrNotFound
	}

	rows, err := m.store.ListGroupDays(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list days of %s: %w", groupID, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	return models.NewReservation(rows), nil
}

// ListOccupied returns every reserved day between from and to inclusive.
// A zero from means today; a zero to means one month after today.
func (m *Manager) ListOccupied(ctx context.Context, from, to time.Time) (_ []models.ReservationDay, err error) {
	ctx, span := m.tracer.Start(ctx, "booking.ListOccupied")
	defer func() { endSpan(span, err) }()

	today := m.Today()
	if from.IsZero() {
		from = today
	}
	if to.IsZero() {
		to = calendar.AddMonths(today, 1)
	}
	from, to = calendar.Day(from), calendar.Day(to)

	if to.Before(from) {
		return nil, nil
	}

	days, err := m.store.ListDays(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list days %s..%s: %w", calendar.Format(from), calendar.Format(to), err)
	}

	return days, nil
}

// Update shifts an existing reservation to in.Start..in.End. The new range
// must have the same number of days as the reservation; occupant details
// and the group ID are kept. The shift is atomic: if any day collides with
// another reservation nothing moves and ErrConflict is returned.
func (m *Manager) Update(ctx context.Context, groupID string, in UpdateInput) (err error) {
	ctx, span := m.tracer.Start(ctx, "booking.Update", trace.WithAttributes(attribute.String("booking.group_id", groupID)))
	defer func() { endSpan(span, err) }()

	if in.Start.IsZero() || in.End.IsZero() {
		return newValidationError(RuleDatesRequired, "both start and end dates are required to update the booking date.")
	}
	start, end := calendar.Day(in.Start), calendar.Day(in.End)

	if err := m.ValidateRange(start, end); err != nil {
		return err
	}

	err = m.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		rows, err := tx.ListGroupDays(ctx, groupID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return ErrNotFound
		}

		if len(rows) != calendar.DaysBetween(start, end)+1 {
			return newValidationError(RuleLengthMismatch, "the booking you were trying to update should have the same days as your new booking.")
		}

		models.SortDays(rows)
		for _, i := range calendar.ShiftOrder(rows[0].Date, start, len(rows)) {
			if err := tx.RewriteDate(ctx, rows[i].ID, calendar.AddDays(start, i)); err != nil {
				return err
			}
		}
		return nil
	})

	switch {
	case err == nil:
		return nil
	case isDomainError(err):
		return err
	case errors.Is(err, storage.ErrDuplicateDate):
		slog.Warn("Reservation shift collided", "group_id", groupID, "error", err)
		return ErrConflict
	default:
		return fmt.Errorf("shift reservation %s: %w", groupID, err)
	}
}

// Delete cancels a reservation, releasing all of its days at once.
func (m *Manager) Delete(ctx context.Context, groupID string) (err error) {
	ctx, span := m.tracer.Start(ctx, "booking.Delete", trace.WithAttributes(attribute.String("booking.group_id", groupID)))
	defer func() { endSpan(span, err) }()

	err = m.store.WithinTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		n, err := tx.DeleteGroupDays(ctx, groupID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil && !isDomainError(err) {
		return fmt.Errorf("delete reservation %s: %w", groupID, err)
	}

	return err
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		if !isDomainError(err) {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}
