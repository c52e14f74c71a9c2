package app

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/room-reservation/reservation/internal/model"
)

func TestParseRooms(t *testing.T) {
	rooms, err := ParseRooms([]string{"r1:Blue:owner:100", " r2:Red:bob:80.50 "})
	require.NoError(t, err)
	require.Equal(t, []model.Room{
		{ID: "r1", Name: "Blue", OwnerID: "owner", PricePerDay: decimal.RequireFromString("100")},
		{ID: "r2", Name: "Red", OwnerID: "bob", PricePerDay: decimal.RequireFromString("80.50")},
	}, rooms)

	for _, bad := range []string{"r1:Blue:owner", "r1:Blue::10", "r1:Blue:owner:x", "r1:Blue:owner:-1"} {
		_, err := ParseRooms([]string{bad})
		require.Error(t, err, bad)
	}
}
