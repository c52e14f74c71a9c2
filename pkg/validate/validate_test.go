package validate_test

import (
	"testing"

	"github.com/Astemirdum/room-reservation/pkg/validate"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestCustomValidator_Validate(t *testing.T) {
	type req struct {
		RoomID string `json:"roomId" validate:"required"`
		Status string `json:"status" validate:"omitempty,oneof=PENDING ACCEPTED"`
		UserID string `json:"-" validate:"required"`
	}
	v := validate.NewCustomValidator()

	require.NoError(t, v.Validate(req{RoomID: "r1", UserID: "u1"}))

	err := v.Validate(req{Status: "LOST"})
	var vErr *validate.Error
	require.True(t, errors.As(err, &vErr))
	require.Equal(t, []validate.FieldError{
		{Field: "roomId", Message: "is required"},
		{Field: "status", Message: "must be one of [PENDING ACCEPTED]"},
		{Field: "UserID", Message: "is required"},
	}, vErr.Fields)
}
