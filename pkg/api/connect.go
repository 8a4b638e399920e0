package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// BookingServiceName is the fully-qualified name of the BookingService.
const BookingServiceName = "campsite.v1.BookingService"

// Procedure paths, relative to the server's base URL.
const (
	BookingServiceListReservationsProcedure  = "/campsite.v1.BookingService/ListReservations"
	BookingServiceGetReservationProcedure    = "/campsite.v1.BookingService/GetReservation"
	BookingServiceCreateReservationProcedure = "/campsite.v1.BookingService/CreateReservation"
	BookingServiceUpdateReservationProcedure = "/campsite.v1.BookingService/UpdateReservation"
	BookingServiceDeleteReservationProcedure = "/campsite.v1.BookingService/DeleteReservation"
)

// BookingServiceClient is a client for the campsite.v1.BookingService service.
type BookingServiceClient interface {
	ListReservations(context.Context, *connect.Request[ListReservationsRequest]) (*connect.Response[ListReservationsResponse], error)
	GetReservation(context.Context, *connect.Request[GetReservationRequest]) (*connect.Response[GetReservationResponse], error)
	CreateReservation(context.Context, *connect.Request[CreateReservationRequest]) (*connect.Response[CreateReservationResponse], error)
	UpdateReservation(context.Context, *connect.Request[UpdateReservationRequest]) (*connect.Response[UpdateReservationResponse], error)
	DeleteReservation(context.Context, *connect.Request[DeleteReservationRequest]) (*connect.Response[DeleteReservationResponse], error)
}

// NewBookingServiceClient constructs a client for the campsite.v1.BookingService
// service. The JSON codec is always installed; opts may add interceptors.
func NewBookingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BookingServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)

	return &bookingServiceClient{
		listReservations: connect.NewClient[ListReservationsRequest, ListReservationsResponse](
			httpClient, baseURL+BookingServiceListReservationsProcedure, opts...),
		getReservation: connect.NewClient[GetReservationRequest, GetReservationResponse](
			httpClient, baseURL+BookingServiceGetReservationProcedure, opts...),
		createReservation: connect.NewClient[CreateReservationRequest, CreateReservationResponse](
			httpClient, baseURL+BookingServiceCreateReservationProcedure, opts...),
		updateReservation: connect.NewClient[UpdateReservationRequest, UpdateReservationResponse](
			httpClient, baseURL+BookingServiceUpdateReservationProcedure, opts...),
		deleteReservation: connect.NewClient[DeleteReservationRequest, DeleteReservationResponse](
			httpClient, baseURL+BookingServiceDeleteReservationProcedure, opts...),
	}
}

type bookingServiceClient struct {
	listReservations  *connect.Client[ListReservationsRequest, ListReservationsResponse]
	getReservation    *connect.Client[GetReservationRequest, GetReservationResponse]
	createReservation *connect.Client[CreateReservationRequest, CreateReservationResponse]
	updateReservation *connect.Client[UpdateReservationRequest, UpdateReservationResponse]
	deleteReservation *connect.Client[DeleteReservationRequest, DeleteReservationResponse]
}

func (c *bookingServiceClient) ListReservations(ctx context.Context, req *connect.Request[ListReservationsRequest]) (*connect.Response[ListReservationsResponse], error) {
	return c.listReservations.CallUnary(ctx, req)
}

func (c *bookingServiceClient) GetReservation(ctx context.Context, req *connect.Request[GetReservationRequest]) (*connect.Response[GetReservationResponse], error) {
	return c.getReservation.CallUnary(ctx, req)
}

func (c *bookingServiceClient) CreateReservation(ctx context.Context, req *connect.Request[CreateReservationRequest]) (*connect.Response[CreateReservationResponse], error) {
	return c.createReservation.CallUnary(ctx, req)
}

func (c *bookingServiceClient) UpdateReservation(ctx context.Context, req *connect.Request[UpdateReservationRequest]) (*connect.Response[UpdateReservationResponse], error) {
	return c.updateReservation.CallUnary(ctx, req)
}

func (c *bookingServiceClient) DeleteReservation(ctx context.Context, req *connect.Request[DeleteReservationRequest]) (*connect.Response[DeleteReservationResponse], error) {
	return c.deleteReservation.CallUnary(ctx, req)
}

// BookingServiceHandler is implemented by the campsite.v1.BookingService server.
type BookingServiceHandler interface {
	ListReservations(context.Context, *connect.Request[ListReservationsRequest]) (*connect.Response[ListReservationsResponse], error)
	GetReservation(context.Context, *connect.Request[GetReservationRequest]) (*connect.Response[GetReservationResponse], error)
	CreateReservation(context.Context, *connect.Request[CreateReservationRequest]) (*connect.Response[CreateReservationResponse], error)
	UpdateReservation(context.Context, *connect.Request[UpdateReservationRequest]) (*connect.Response[UpdateReservationResponse], error)
	DeleteReservation(context.Context, *connect.Request[DeleteReservationRequest]) (*connect.Response[DeleteReservationResponse], error)
}

// NewBookingServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewBookingServiceHandler(svc BookingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	listReservations := connect.NewUnaryHandler(BookingServiceListReservationsProcedure, svc.ListReservations,
		append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...)
	getReservation := connect.NewUnaryHandler(BookingServiceGetReservationProcedure, svc.GetReservation,
		append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))...)
	createReservation := connect.NewUnaryHandler(BookingServiceCreateReservationProcedure, svc.CreateReservation, opts...)
	updateReservation := connect.NewUnaryHandler(BookingServiceUpdateReservationProcedure, svc.UpdateReservation, opts...)
	deleteReservation := connect.NewUnaryHandler(BookingServiceDeleteReservationProcedure, svc.DeleteReservation, opts...)

	return "/" + BookingServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BookingServiceListReservationsProcedure:
			listReservations.ServeHTTP(w, r)
		case BookingServiceGetReservationProcedure:
			getReservation.ServeHTTP(w, r)
		case BookingServiceCreateReservationProcedure:
			createReservation.ServeHTTP(w, r)
		case BookingServiceUpdateReservationProcedure:
			updateReservation.ServeHTTP(w, r)
		case BookingServiceDeleteReservationProcedure:
			deleteReservation.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedBookingServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedBookingServiceHandler struct{}

func (UnimplementedBookingServiceHandler) ListReservations(context.Context, *connect.Request[ListReservationsRequest]) (*connect.Response[ListReservationsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("campsite.v1.BookingService.ListReservations is not implemented"))
}

func (UnimplementedBookingServiceHandler) GetReservation(context.Context, *connect.Request[GetReservationRequest]) (*connect.Response[GetReservationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("campsite.v1.BookingService.GetReservation is not implemented"))
}

func (UnimplementedBookingServiceHandler) CreateReservation(context.Context, *connect.Request[CreateReservationRequest]) (*connect.Response[CreateReservationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("campsite.v1.BookingService.CreateReservation is not implemented"))
}

func (UnimplementedBookingServiceHandler) UpdateReservation(context.Context, *connect.Request[UpdateReservationRequest]) (*connect.Response[UpdateReservationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("campsite.v1.BookingService.UpdateReservation is not implemented"))
}

func (UnimplementedBookingServiceHandler) DeleteReservation(context.Context, *connect.Request[DeleteReservationRequest]) (*connect.Response[DeleteReservationResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("campsite.v1.BookingService.DeleteReservation is not implemented"))
}
