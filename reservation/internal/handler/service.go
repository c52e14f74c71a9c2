package handler

import (
	"context"

	"github.com/Astemirdum/room-reservation/reservation/internal/model"
	"github.com/Astemirdum/room-reservation/reservation/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type ReservationService interface {
	CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error)
	GetReservation(ctx context.Context, id string) (model.Reservation, error)
	GetReservations(ctx context.Context, userID string) ([]model.Reservation, error)
	QueryReservations(ctx context.Context, q model.ReservationQuery) ([]model.Reservation, error)
	AcceptReservation(ctx context.Context, id string) (model.Reservation, error)
	RejectReservation(ctx context.Context, id string) (model.Reservation, error)
	CancelReservation(ctx context.Context, id string) (model.Reservation, error)
	ModifyReservation(ctx context.Context, id string, req model.ModifyReservationRequest) (model.Reservation, error)
	DeleteReservation(ctx context.Context, id string) (string, error)
}

var _ ReservationService = (*service.Service)(nil)
