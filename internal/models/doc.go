// Package models defines the core domain models for campsite reservations.
//
// # Models
//
//   - ReservationDay: one stored row, one calendar date held by one reservation
//   - Reservation: the derived aggregate of all days sharing a group ID
//   - Occupant: the person holding a reservation
//
// # Design Principles
//
// 1. **One row per day**: the storage layer enforces at most one
// ReservationDay per date; that uniqueness constraint is what decides who
// gets a day when requests race.
// 2. **Grouping by ID only**: rows never reference each other. A reservation
// is the set of rows sharing a GroupID, ordered by date.
// 3. **Dates are calendar days**: every date is midnight UTC, see package
// calendar.
package models
