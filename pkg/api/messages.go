// Package api defines the wire contract of the campsite BookingService.
//
// Messages are plain Go structs carried as JSON over the Connect protocol.
// Dates are ISO strings (YYYY-MM-DD).
package api

// Slot is one reserved day. From and To are both the day itself.
type Slot struct {
	GroupID string `json:"group_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// Reservation summarises a whole reservation group.
type Reservation struct {
	GroupID string   `json:"group_id"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Days    []string `json:"days"`
}

// ListReservationsRequest asks for every reserved day in a date window.
type ListReservationsRequest struct {
	// From defaults to today when empty.
	From string `json:"from,omitempty"`
	// To defaults to one month from today when empty.
	To string `json:"to,omitempty"`
}

// ListReservationsResponse holds one slot per reserved day, ordered by date.
type ListReservationsResponse struct {
	Slots []Slot `json:"slots"`
}

// GetReservationRequest looks up one reservation by its group ID.
type GetReservationRequest struct {
	GroupID string `json:"group_id"`
}

// GetReservationResponse carries the reservation's days as slots plus its summary.
type GetReservationResponse struct {
	Slots       []Slot       `json:"slots"`
	Reservation *Reservation `json:"reservation"`
}

// CreateReservationRequest books From..To inclusive for one occupant.
type CreateReservationRequest struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Email    string `json:"email"`
	From     string `json:"from"`
	To       string `json:"to"`
}

// CreateReservationResponse returns the new reservation, including its group ID.
type CreateReservationResponse struct {
	Reservation *Reservation `json:"reservation"`
}

// UpdateReservationRequest moves a reservation to a new range of the same length.
type UpdateReservationRequest struct {
	GroupID string `json:"group_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

// UpdateReservationResponse is empty; success is the absence of an error.
type UpdateReservationResponse struct{}

// DeleteReservationRequest cancels a reservation by its group ID.
type DeleteReservationRequest struct {
	GroupID string `json:"group_id"`
}

// DeleteReservationResponse is empty; success is the absence of an error.
type DeleteReservationResponse struct{}
