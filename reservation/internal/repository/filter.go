package repository

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/Astemirdum/room-reservation/reservation/internal/model"
)

// Filter describes a reservation selection. The same value drives both
// Find and Exists in every store implementation.
type Filter struct {
	RoomID   string
	UserID   string
	Statuses []model.Status
	Interval *model.Interval
	// ForUpdate locks the matched rows until the surrounding transaction ends.
	ForUpdate bool
}

func Overlapping(roomID string, in model.Interval, statuses ...model.Status) Filter {
	return Filter{RoomID: roomID, Interval: &in, Statuses: statuses}
}

func ByUser(userID string) Filter {
	return Filter{UserID: userID}
}

func (f Filter) Locked() Filter {
	f.ForUpdate = true
	return f
}

func (f Filter) Match(r model.Reservation) bool {
	if f.RoomID != "" && r.RoomID != f.RoomID {
		return false
	}
	if f.UserID != "" && r.UserID != f.UserID {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, r.Status) {
		return false
	}
	if f.Interval != nil && !f.Interval.Overlaps(r.Interval()) {
		return false
	}
	return true
}

// where renders the filter as a squirrel predicate. Interval overlap of
// [from_date,to_date] with [a,b] is from_date <= b and to_date >= a.
func (f Filter) where() sq.And {
	pred := sq.And{}
	if f.RoomID != "" {
		pred = append(pred, sq.Eq{"room_id": f.RoomID})
	}
	if f.UserID != "" {
		pred = append(pred, sq.Eq{"user_id": f.UserID})
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		pred = append(pred, sq.Eq{"status": statuses})
	}
	if f.Interval != nil {
		pred = append(pred,
			sq.LtOrEq{"from_date": f.Interval.To.Time},
			sq.GtOrEq{"to_date": f.Interval.From.Time},
		)
	}
	return pred
}

func containsStatus(list []model.Status, s model.Status) bool {
	for i := range list {
		if list[i] == s {
			return true
		}
	}
	return false
}
