package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func d(t *testing.T, s string) Date {
	t.Helper()
	date, err := ParseDate(s)
	require.NoError(t, err)
	return date
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, e string
		want       bool
	}{
		{"same day", "2020-01-01", "2020-01-01", "2020-01-01", "2020-01-01", true},
		{"touching end to start", "2020-01-01", "2020-01-03", "2020-01-03", "2020-01-05", true},
		{"touching start to end", "2020-01-03", "2020-01-05", "2020-01-01", "2020-01-03", true},
		{"contained", "2020-01-01", "2020-01-10", "2020-01-04", "2020-01-05", true},
		{"adjacent days", "2020-01-01", "2020-01-01", "2020-01-02", "2020-01-02", false},
		{"disjoint", "2020-01-01", "2020-01-03", "2020-02-01", "2020-02-03", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, c, e := d(t, tt.a), d(t, tt.b), d(t, tt.c), d(t, tt.e)
			require.Equal(t, tt.want, Overlaps(a, b, c, e))
			require.Equal(t, tt.want, Overlaps(c, e, a, b), "overlap is symmetric")
			require.Equal(t, !a.After(e.Time) && !c.After(b.Time), Overlaps(a, b, c, e))
		})
	}
}

func TestDaysInclusive(t *testing.T) {
	require.EqualValues(t, 1, DaysInclusive(d(t, "2020-01-01"), d(t, "2020-01-01")))
	require.EqualValues(t, 3, DaysInclusive(d(t, "2020-01-01"), d(t, "2020-01-03")))
	require.EqualValues(t, 30, DaysInclusive(d(t, "2020-02-15"), d(t, "2020-03-15")))
	// longer than time.Duration can hold
	require.EqualValues(t, 137332, Interval{From: d(t, "2024-01-01"), To: d(t, "2400-01-01")}.Days())
	require.EqualValues(t, 3652059, DaysInclusive(d(t, "0001-01-01"), d(t, "9999-12-31")))
}

func TestNewDate_NormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	got := NewDate(time.Date(2021, 3, 4, 23, 30, 0, 0, loc))
	require.Equal(t, time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC), got.Time)
}

func TestDate_JSON(t *testing.T) {
	var req ModifyReservationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"fromDate":"2020-01-02","toDate":"2020-01-05"}`), &req))
	require.Equal(t, "2020-01-02", req.FromDate.String())
	require.EqualValues(t, 4, req.Interval().Days())

	b, err := json.Marshal(req)
	require.NoError(t, err)
	require.JSONEq(t, `{"fromDate":"2020-01-02","toDate":"2020-01-05"}`, string(b))

	require.Error(t, json.Unmarshal([]byte(`{"fromDate":"02.01.2020"}`), &req))
}

func TestDate_Scan(t *testing.T) {
	var dt Date
	require.NoError(t, dt.Scan(time.Date(2022, 5, 6, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, "2022-05-06", dt.String())
	require.NoError(t, dt.Scan("2022-05-07"))
	require.Equal(t, "2022-05-07", dt.String())
	require.Error(t, dt.Scan(42))
}

func TestStatus(t *testing.T) {
	require.True(t, StatusPending.Modifiable())
	require.True(t, StatusAccepted.Modifiable())
	require.False(t, StatusRejected.Modifiable())
	require.False(t, StatusCancelled.Modifiable())
	require.False(t, Status("LOST").Valid())
}
