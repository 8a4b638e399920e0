package models

import (
	"sort"
	"time"
)

// Occupant identifies who holds a reservation.
type Occupant struct {
	// Name is the occupant's first name.
	Name string

	// LastName is the occupant's surname.
	LastName string

	// Email is the occupant's contact address.
	Email string
}

// ReservationDay is one calendar day occupied by a reservation.
// At most one ReservationDay exists per Date.
type ReservationDay struct {
	// ID is the row identifier assigned by the store.
	ID int64

	// GroupID is the identifier shared by all days of one reservation (UUID format).
	GroupID string

	// Occupant holds the contact details copied onto every day of the group.
	Occupant Occupant

	// Date is the occupied calendar date. It is the only field that changes
	// after insertion, when the reservation is shifted.
	Date time.Time
}

// Reservation is the aggregate view of a group of ReservationDay rows.
// It is never stored; it is rebuilt from rows on every read.
type Reservation struct {
	GroupID  string
	Start    time.Time
	End      time.Time
	Days     []time.Time
	Occupant Occupant
}

// Len returns the number of days held by the reservation.
func (r *Reservation) Len() int {
	return len(r.Days)
}

// NewReservation builds the aggregate for rows of a single group.
// It returns nil when rows is empty.
func NewReservation(rows []ReservationDay) *Reservation {
	if len(rows) == 0 {
		return nil
	}

	sorted := make([]ReservationDay, len(rows))
	copy(sorted, rows)
	SortDays(sorted)

	days := make([]time.Time, len(sorted))
	for i, row := range sorted {
		days[i] = row.Date
	}

	return &Reservation{
		GroupID:  sorted[0].GroupID,
		Start:    days[0],
		End:      days[len(days)-1],
		Days:     days,
		Occupant: sorted[0].Occupant,
	}
}

// SortDays orders rows by date, ascending.
func SortDays(rows []ReservationDay) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
}
