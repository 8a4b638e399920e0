package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/campsite/internal/booking"
	"github.com/mmynk/campsite/internal/calendar"
	"github.com/mmynk/campsite/internal/models"
	"github.com/mmynk/campsite/pkg/api"
)

// Stable caller-facing messages. Store errors are logged, never returned.
var (
	errInternal       = errors.New("an internal server error has occurred. Please, try again in a few minutes.")
	errGetNotFound    = errors.New("the booking you were looking for doesn't exist.")
	errUpdateNotFound = errors.New("the booking you were trying to update doesn't exist.")
	errDeleteNotFound = errors.New("there's no booking with such UUID.")
)

// BookingService implements the Connect BookingService
type BookingService struct {
	api.UnimplementedBookingServiceHandler
	manager *booking.Manager
}

// NewBookingService creates a new BookingService over the reservation engine.
func NewBookingService(manager *booking.Manager) *BookingService {
	return &BookingService{manager: manager}
}

// ListReservations returns every reserved day in the requested window.
func (s *BookingService) ListReservations(ctx context.Context, req *connect.Request[api.ListReservationsRequest]) (*connect.Response[api.ListReservationsResponse], error) {
	slog.Info("ListReservations request received", "from", req.Msg.From, "to", req.Msg.To)

	from, err := parseOptionalDate(req.Msg.From)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	to, err := parseOptionalDate(req.Msg.To)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	days, err := s.manager.ListOccupied(ctx, from, to)
	if err != nil {
		slog.Error("ListReservations failed", "error", err)
		return nil, toConnectError(err, nil)
	}

	slog.Info("ListReservations successful", "count", len(days))

	return connect.NewResponse(&api.ListReservationsResponse{
		Slots: toSlots(days),
	}), nil
}

// GetReservation retrieves one reservation by group ID.
func (s *BookingService) GetReservation(ctx context.Context, req *connect.Request[api.GetReservationRequest]) (*connect.Response[api.GetReservationResponse], error) {
	slog.Info("GetReservation request received", "group_id", req.Msg.GroupID)

	reservation, err := s.manager.Get(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Warn("GetReservation failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err, errGetNotFound)
	}

	slog.Info("GetReservation successful", "group_id", reservation.GroupID, "days", reservation.Len())

	slots := make([]api.Slot, len(reservation.Days))
	for i, day := range reservation.Days {
		slots[i] = slot(reservation.GroupID, day)
	}

	return connect.NewResponse(&api.GetReservationResponse{
		Slots:       slots,
		Reservation: toReservation(reservation),
	}), nil
}

// CreateReservation books a new range of days.
func (s *BookingService) CreateReservation(ctx context.Context, req *connect.Request[api.CreateReservationRequest]) (*connect.Response[api.CreateReservationResponse], error) {
	slog.Info("CreateReservation request received",
		"from", req.Msg.From,
		"to", req.Msg.To,
	)

	from, err := parseOptionalDate(req.Msg.From)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	to, err := parseOptionalDate(req.Msg.To)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	reservation, err := s.manager.Create(ctx, booking.CreateInput{
		Occupant: models.Occupant{
			Name:     req.Msg.Name,
			LastName: req.Msg.LastName,
			Email:    req.Msg.Email,
		},
		Start: from,
		End:   to,
	})
	if err != nil {
		slog.Warn("CreateReservation failed", "from", req.Msg.From, "to", req.Msg.To, "error", err)
		return nil, toConnectError(err, nil)
	}

	slog.Info("Reservation created", "group_id", reservation.GroupID, "days", reservation.Len())

	return connect.NewResponse(&api.CreateReservationResponse{
		Reservation: toReservation(reservation),
	}), nil
}

// UpdateReservation shifts an existing reservation to new dates.
func (s *BookingService) UpdateReservation(ctx context.Context, req *connect.Request[api.UpdateReservationRequest]) (*connect.Response[api.UpdateReservationResponse], error) {
	slog.Info("UpdateReservation request received",
		"group_id", req.Msg.GroupID,
		"from", req.Msg.From,
		"to", req.Msg.To,
	)

	from, err := parseOptionalDate(req.Msg.From)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	to, err := parseOptionalDate(req.Msg.To)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.manager.Update(ctx, req.Msg.GroupID, booking.UpdateInput{Start: from, End: to}); err != nil {
		slog.Warn("UpdateReservation failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err, errUpdateNotFound)
	}

	slog.Info("Reservation updated", "group_id", req.Msg.GroupID)

	return connect.NewResponse(&api.UpdateReservationResponse{}), nil
}

// DeleteReservation cancels a reservation by group ID.
func (s *BookingService) DeleteReservation(ctx context.Context, req *connect.Request[api.DeleteReservationRequest]) (*connect.Response[api.DeleteReservationResponse], error) {
	slog.Info("DeleteReservation request received", "group_id", req.Msg.GroupID)

	if err := s.manager.Delete(ctx, req.Msg.GroupID); err != nil {
		slog.Warn("DeleteReservation failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err, errDeleteNotFound)
	}

	slog.Info("Reservation deleted", "group_id", req.Msg.GroupID)

	return connect.NewResponse(&api.DeleteReservationResponse{}), nil
}

// toConnectError maps an engine error to its Connect code and public message.
// notFound is the message used for booking.ErrNotFound.
func toConnectError(err error, notFound error) *connect.Error {
	if validationErr := booking.IsValidationError(err); validationErr != nil {
		return connect.NewError(connect.CodeInvalidArgument, validationErr)
	}

	switch {
	case errors.Is(err, booking.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, errors.New("the campsite is occupied for the days you have selected."))
	case errors.Is(err, booking.ErrNotFound) && notFound != nil:
		return connect.NewError(connect.CodeNotFound, notFound)
	default:
		return connect.NewError(connect.CodeInternal, errInternal)
	}
}

func parseOptionalDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return calendar.Parse(s)
}

func slot(groupID string, day time.Time) api.Slot {
	date := calendar.Format(day)
	return api.Slot{GroupID: groupID, From: date, To: date}
}

func toSlots(days []models.ReservationDay) []api.Slot {
	slots := make([]api.Slot, len(days))
	for i, day := range days {
		slots[i] = slot(day.GroupID, day.Date)
	}
	return slots
}

func toReservation(r *models.Reservation) *api.Reservation {
	days := make([]string, len(r.Days))
	for i, day := range r.Days {
		days[i] = calendar.Format(day)
	}
	return &api.Reservation{
		GroupID: r.GroupID,
		From:    calendar.Format(r.Start),
		To:      calendar.Format(r.End),
		Days:    days,
	}
}
