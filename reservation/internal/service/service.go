package service

import (
	"context"
	"sort"
	"time"

	"github.com/Astemirdum/room-reservation/pkg/auth"
	"github.com/Astemirdum/room-reservation/pkg/validate"
	"github.com/Astemirdum/room-reservation/reservation/internal/errs"
	"github.com/Astemirdum/room-reservation/reservation/internal/model"
	"github.com/Astemirdum/room-reservation/reservation/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

// Publisher delivers reservation events after the change is committed.
type Publisher interface {
	Publish(ctx context.Context, events ...model.ReservationEvent) error
}

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	rooms  repository.RoomRepository
	events Publisher
	now    func() time.Time
}

func NewService(repo repository.Repository, rooms repository.RoomRepository, events Publisher, log *zap.Logger) *Service {
	return &Service{
		log:    log.Named("engine"),
		repo:   repo,
		rooms:  rooms,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) CreateReservation(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error) {
	in := req.Interval()
	if err := validateInterval(in); err != nil {
		return model.Reservation{}, err
	}
	if fields := priceErrors(req.PricePerDay, req.TotalPrice); len(fields) > 0 {
		return model.Reservation{}, errs.NewValidation(fields...)
	}

	var (
		room    model.Room
		overlap bool
	)
	gg, gctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		r, err := s.rooms.GetRoom(gctx, req.RoomID)
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NewValidation(errs.Field("roomId", "room does not exist"))
		}
		room = r
		return err
	})
	gg.Go(func() error {
		var err error
		overlap, err = repository.ExistsOverlapping(gctx, s.repo, req.RoomID, in, model.StatusAccepted)
		return err
	})
	if err := gg.Wait(); err != nil {
		return model.Reservation{}, err
	}
	if overlap {
		return model.Reservation{}, errs.NewConflict(errs.MsgOverlapExists)
	}

	pricePerDay := req.PricePerDay
	if pricePerDay.IsZero() {
		pricePerDay = room.PricePerDay
	}
	total := totalPrice(pricePerDay, in)
	if !req.TotalPrice.IsZero() && !req.TotalPrice.Equal(total) {
		return model.Reservation{}, errs.NewValidation(
			errs.Field("totalPrice", "must equal pricePerDay multiplied by the number of days ("+total.StringFixed(2)+")"))
	}

	now := s.now()
	rsv, err := s.repo.Insert(ctx, model.Reservation{
		ID:          uuid.NewString(),
		RoomID:      req.RoomID,
		UserID:      req.UserID,
		FromDate:    in.From,
		ToDate:      in.To,
		PricePerDay: pricePerDay,
		TotalPrice:  total,
		Status:      model.StatusPending,
		CreateDate:  now,
		UpdateDate:  now,
	})
	if err != nil {
		return model.Reservation{}, err
	}
	s.publish(ctx, model.NewEvent(model.EventCreated, rsv, now))
	return rsv, nil
}

// AcceptReservation accepts a pending reservation and rejects every pending
// one overlapping it. Any other status is an InvalidStateError. When an
// accepted reservation already overlaps, the reservation itself is rejected
// and committed, and a self-rejected ConflictError is returned.
func (s *Service) AcceptReservation(ctx context.Context, id string) (model.Reservation, error) {
	var (
		accepted     model.Reservation
		selfRejected bool
		cascaded     []model.Reservation
	)
	err := s.repo.InTx(ctx, func(ctx context.Context, tx repository.Repository) error {
		rsv, err := tx.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if rsv.Status != model.StatusPending {
			return errs.InvalidState(rsv.Status, "accept")
		}
		if err := s.authorizeRoomOwner(ctx, rsv.RoomID); err != nil {
			return err
		}

		overlapping, err := tx.Find(ctx, repository.Overlapping(rsv.RoomID, rsv.Interval()).Locked())
		if err != nil {
			return err
		}
		pendingIDs := make([]string, 0, len(overlapping))
		for _, other := range overlapping {
			if other.ID == rsv.ID {
				// the locked copy wins over the first read
				rsv = other
				continue
			}
			switch other.Status {
			case model.StatusAccepted:
				selfRejected = true
			case model.StatusPending:
				pendingIDs = append(pendingIDs, other.ID)
				cascaded = append(cascaded, other)
			}
		}

		if rsv.Status != model.StatusPending {
			return errs.InvalidState(rsv.Status, "accept")
		}
		if selfRejected {
			cascaded = nil
			accepted, err = tx.UpdateStatus(ctx, rsv.ID, model.StatusRejected)
			return err
		}
		if len(pendingIDs) > 0 {
			if _, err := tx.UpdateManyStatus(ctx, pendingIDs, model.StatusRejected); err != nil {
				return err
			}
		}
		accepted, err = tx.UpdateStatus(ctx, rsv.ID, model.StatusAccepted)
		return err
	})
	if err != nil {
		return model.Reservation{}, err
	}

	now := s.now()
	if selfRejected {
		s.publish(ctx, model.NewEvent(model.EventSelfRejected, accepted, now))
		return model.Reservation{}, errs.NewSelfRejected(accepted)
	}
	events := make([]model.ReservationEvent, 0, len(cascaded)+1)
	for _, r := range cascaded {
		r.Status = model.StatusRejected
		events = append(events, model.NewEvent(model.EventCascadeRejected, r, now))
	}
	events = append(events, model.NewEvent(model.EventAccepted, accepted, now))
	s.publish(ctx, events...)
	return accepted, nil
}

func (s *Service) RejectReservation(ctx context.Context, id string) (model.Reservation, error) {
	rsv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if err := s.authorizeRoomOwner(ctx, rsv.RoomID); err != nil {
		return model.Reservation{}, err
	}
	return s.setStatus(ctx, id, model.StatusRejected, model.EventRejected)
}

func (s *Service) CancelReservation(ctx context.Context, id string) (model.Reservation, error) {
	rsv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if err := authorizeOwnerOrAdmin(ctx, rsv.UserID); err != nil {
		return model.Reservation{}, err
	}
	return s.setStatus(ctx, id, model.StatusCancelled, model.EventCancelled)
}

func (s *Service) setStatus(ctx context.Context, id string, status model.Status, typ model.EventType) (model.Reservation, error) {
	rsv, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return model.Reservation{}, err
	}
	s.publish(ctx, model.NewEvent(typ, rsv, s.now()))
	return rsv, nil
}

// ModifyReservation moves the reservation to new dates and puts it back
// into review. Overlaps are not checked until the next accept.
func (s *Service) ModifyReservation(ctx context.Context, id string, req model.ModifyReservationRequest) (model.Reservation, error) {
	in := req.Interval()
	if err := validateInterval(in); err != nil {
		return model.Reservation{}, err
	}
	rsv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if !rsv.Status.Modifiable() {
		return model.Reservation{}, errs.InvalidState(rsv.Status, "modify")
	}
	if err := authorizeOwner(ctx, rsv.UserID); err != nil {
		return model.Reservation{}, err
	}

	rsv.FromDate, rsv.ToDate = in.From, in.To
	rsv.TotalPrice = totalPrice(rsv.PricePerDay, in)
	rsv.Status = model.StatusPending
	updated, err := s.repo.Update(ctx, rsv)
	if err != nil {
		return model.Reservation{}, err
	}
	s.publish(ctx, model.NewEvent(model.EventModified, updated, s.now()))
	return updated, nil
}

// DeleteReservation removes the reservation regardless of its status.
// An empty id with a nil error means there was nothing to delete.
func (s *Service) DeleteReservation(ctx context.Context, id string) (string, error) {
	rsv, err := s.repo.DeleteByID(ctx, id)
	if errors.Is(err, errs.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	s.publish(ctx, model.NewEvent(model.EventDeleted, rsv, s.now()))
	return rsv.ID, nil
}

func (s *Service) GetReservation(ctx context.Context, id string) (model.Reservation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) GetReservations(ctx context.Context, userID string) ([]model.Reservation, error) {
	return s.repo.Find(ctx, repository.ByUser(userID))
}

func (s *Service) QueryReservations(ctx context.Context, q model.ReservationQuery) ([]model.Reservation, error) {
	f := repository.Filter{RoomID: q.RoomID, Statuses: q.Statuses}
	if q.Interval != nil {
		if err := validateInterval(*q.Interval); err != nil {
			return nil, err
		}
		f.Interval = q.Interval
	}
	for _, st := range q.Statuses {
		if !st.Valid() {
			return nil, errs.NewValidation(errs.Field("status", "must be one of [PENDING ACCEPTED REJECTED CANCELLED]"))
		}
	}
	return s.repo.Find(ctx, f)
}

func (s *Service) publish(ctx context.Context, events ...model.ReservationEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.log.Warn("publish reservation events",
			zap.Int("count", len(events)),
			zap.String("reservationId", events[len(events)-1].ReservationID),
			zap.Error(err))
	}
}

func (s *Service) authorizeRoomOwner(ctx context.Context, roomID string) error {
	p, ok := auth.FromContext(ctx)
	if !ok {
		return nil
	}
	if p.IsAdmin() {
		return nil
	}
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errors.Wrap(errs.ErrForbidden, "room owner unknown")
		}
		return err
	}
	if room.OwnerID != p.UserID {
		return errors.Wrap(errs.ErrForbidden, "not the room owner")
	}
	return nil
}

func authorizeOwnerOrAdmin(ctx context.Context, userID string) error {
	if auth.IsAdmin(ctx) {
		return nil
	}
	return authorizeOwner(ctx, userID)
}

// authorizeOwner lets calls without a principal through: the engine is
// also driven by trusted callers that authenticate elsewhere.
func authorizeOwner(ctx context.Context, userID string) error {
	p, ok := auth.FromContext(ctx)
	if !ok || p.UserID == userID {
		return nil
	}
	return errors.Wrap(errs.ErrForbidden, "not the reservation owner")
}

func priceErrors(pricePerDay, total decimal.Decimal) []validate.FieldError {
	var fields []validate.FieldError
	for name, v := range map[string]decimal.Decimal{"pricePerDay": pricePerDay, "totalPrice": total} {
		if v.IsNegative() {
			fields = append(fields, errs.Field(name, "must not be negative"))
		} else if !fitsCents(v) {
			fields = append(fields, errs.Field(name, "must have at most two fractional digits"))
		}
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return fields
}

func validateInterval(in model.Interval) error {
	switch {
	case in.From.IsZero():
		return errs.NewValidation(errs.Field("fromDate", "is required"))
	case in.To.IsZero():
		return errs.NewValidation(errs.Field("toDate", "is required"))
	case in.From.After(in.To.Time):
		return errs.NewValidation(errs.Field("toDate", "must not be before fromDate"))
	}
	return nil
}

func totalPrice(pricePerDay decimal.Decimal, in model.Interval) decimal.Decimal {
	return pricePerDay.Mul(decimal.NewFromInt(in.Days())).Round(2)
}

func fitsCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}
