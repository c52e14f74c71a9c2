package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/room-reservation/pkg/validate"
	"github.com/Astemirdum/room-reservation/reservation/internal/errs"
)

// notFoundPolicy decides what an unknown id turns into for a route.
type notFoundPolicy func(err error) error

func notFoundIsError(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{Message: err.Error()})
}

// notFoundIsNull answers 200 with a null body.
func notFoundIsNull(c echo.Context) notFoundPolicy {
	return func(error) error {
		return c.JSON(http.StatusOK, nil)
	}
}

func (h *Handler) mapError(err error, notFound notFoundPolicy) error {
	var (
		reqErr      *validate.Error
		validErr    *errs.ValidationError
		conflictErr *errs.ConflictError
	)
	switch {
	case errors.As(err, &reqErr):
		return echo.NewHTTPError(http.StatusBadRequest, errs.ValidationErrorResponse{
			Message: errs.ErrValidation.Error(),
			Errors:  reqErr.Fields,
		})
	case errors.As(err, &validErr):
		return echo.NewHTTPError(http.StatusBadRequest, errs.ValidationErrorResponse{
			Message: errs.ErrValidation.Error(),
			Errors:  validErr.Fields,
		})
	case errors.As(err, &conflictErr):
		return echo.NewHTTPError(http.StatusBadRequest, errs.ConflictErrorResponse{
			Message:      conflictErr.Message,
			SelfRejected: conflictErr.SelfRejected,
			Reservation:  conflictErr.Reservation,
		})
	case errors.Is(err, errs.ErrInvalidState):
		return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{Message: err.Error()})
	case errors.Is(err, errs.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, errs.ErrorResponse{Message: err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		return notFound(err)
	}
	h.log.Error("reservation request failed", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, errs.ErrorResponse{Message: err.Error()})
}

func bindError(err error) error {
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprint(he.Message)
		if he.Internal != nil {
			msg = he.Internal.Error()
		}
	}
	return echo.NewHTTPError(http.StatusBadRequest, errs.ErrorResponse{Message: msg})
}
