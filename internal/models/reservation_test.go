package models

import (
	"testing"
	"time"
)

func TestNewReservation(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, time.October, d, 0, 0, 0, 0, time.UTC) }
	occupant := Occupant{Name: "Tomas", LastName: "Juarez", Email: "tomas@example.com"}

	t.Run("empty rows", func(t *testing.T) {
		if r := NewReservation(nil); r != nil {
			t.Errorf("expected nil reservation, got %+v", r)
		}
	})

	t.Run("orders days regardless of input order", func(t *testing.T) {
		rows := []ReservationDay{
			{ID: 3, GroupID: "g1", Occupant: occupant, Date: day(18)},
			{ID: 1, GroupID: "g1", Occupant: occupant, Date: day(16)},
			{ID: 2, GroupID: "g1", Occupant: occupant, Date: day(17)},
		}

		r := NewReservation(rows)
		if r == nil {
			t.Fatal("expected reservation")
		}
		if r.GroupID != "g1" {
			t.Errorf("GroupID = %q, want g1", r.GroupID)
		}
		if !r.Start.Equal(day(16)) || !r.End.Equal(day(18)) {
			t.Errorf("range = %v..%v, want 16..18", r.Start, r.End)
		}
		if r.Len() != 3 {
			t.Errorf("Len = %d, want 3", r.Len())
		}
		if r.Occupant != occupant {
			t.Errorf("Occupant = %+v, want %+v", r.Occupant, occupant)
		}
		// Input slice is left untouched.
		if rows[0].ID != 3 {
			t.Error("NewReservation reordered its input")
		}
	})
}
