package repository

import (
	"context"

	"github.com/Astemirdum/room-reservation/reservation/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

// Repository is the reservation store. It holds no business rules: the
// overlap invariant is enforced by the lifecycle engine.
type Repository interface {
	Insert(ctx context.Context, rsv model.Reservation) (model.Reservation, error)
	FindByID(ctx context.Context, id string) (model.Reservation, error)
	Find(ctx context.Context, f Filter) ([]model.Reservation, error)
	Exists(ctx context.Context, f Filter) (bool, error)
	Update(ctx context.Context, rsv model.Reservation) (model.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) (model.Reservation, error)
	UpdateManyStatus(ctx context.Context, ids []string, status model.Status) (int64, error)
	DeleteByID(ctx context.Context, id string) (model.Reservation, error)
	// InTx runs fn against a store bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error
}

type RoomRepository interface {
	GetRoom(ctx context.Context, id string) (model.Room, error)
}

// FindOverlapping returns reservations on roomID overlapping [from,to],
// optionally restricted to statuses.
func FindOverlapping(ctx context.Context, repo Repository, roomID string, in model.Interval, statuses ...model.Status) ([]model.Reservation, error) {
	return repo.Find(ctx, Overlapping(roomID, in, statuses...))
}

func ExistsOverlapping(ctx context.Context, repo Repository, roomID string, in model.Interval, status model.Status) (bool, error) {
	return repo.Exists(ctx, Overlapping(roomID, in, status))
}
