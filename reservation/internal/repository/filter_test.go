package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/room-reservation/reservation/internal/model"
)

func day(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestFindQuery_Overlapping(t *testing.T) {
	in := model.Interval{From: day(t, "2020-01-01"), To: day(t, "2020-01-03")}

	q, args, err := findQuery(Overlapping("room-1", in, model.StatusAccepted, model.StatusPending).Locked()).ToSql()
	require.NoError(t, err)
	require.Equal(t,
		"SELECT id, room_id, user_id, from_date, to_date, price_per_day, total_price, status, create_date, update_date "+
			"FROM reservation WHERE (room_id = $1 AND status IN ($2,$3) AND from_date <= $4 AND to_date >= $5) "+
			"ORDER BY from_date, create_date FOR UPDATE", q)
	require.Equal(t, []interface{}{
		"room-1", "ACCEPTED", "PENDING",
		time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}, args)
}

func TestExistsQuery(t *testing.T) {
	in := model.Interval{From: day(t, "2020-01-01"), To: day(t, "2020-01-01")}

	q, args, err := existsQuery(Overlapping("room-1", in, model.StatusAccepted)).ToSql()
	require.NoError(t, err)
	require.Equal(t,
		"SELECT 1 FROM reservation WHERE (room_id = $1 AND status IN ($2) AND from_date <= $3 AND to_date >= $4) LIMIT 1", q)
	require.Len(t, args, 4)
}

func TestFindQuery_ByUser(t *testing.T) {
	q, args, err := findQuery(ByUser("alice")).ToSql()
	require.NoError(t, err)
	require.Contains(t, q, "WHERE (user_id = $1)")
	require.NotContains(t, q, "FOR UPDATE")
	require.Equal(t, []interface{}{"alice"}, args)
}

func TestFilter_Match(t *testing.T) {
	rsv := model.Reservation{
		RoomID:   "room-1",
		UserID:   "alice",
		FromDate: day(t, "2020-01-02"),
		ToDate:   day(t, "2020-01-04"),
		Status:   model.StatusPending,
	}
	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter", Filter{}, true},
		{"other room", Filter{RoomID: "room-2"}, false},
		{"status subset hit", Filter{Statuses: []model.Status{model.StatusAccepted, model.StatusPending}}, true},
		{"status subset miss", Filter{Statuses: []model.Status{model.StatusAccepted}}, false},
		{"touching end", Overlapping("room-1", model.Interval{From: day(t, "2020-01-04"), To: day(t, "2020-01-09")}), true},
		{"touching start", Overlapping("room-1", model.Interval{From: day(t, "2019-12-30"), To: day(t, "2020-01-02")}), true},
		{"day after", Overlapping("room-1", model.Interval{From: day(t, "2020-01-05"), To: day(t, "2020-01-05")}), false},
		{"other user", ByUser("bob"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.filter.Match(rsv))
		})
	}
}
