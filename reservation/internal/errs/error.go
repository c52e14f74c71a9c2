package errs

import (
	"fmt"
	"strings"

	"github.com/Astemirdum/room-reservation/pkg/validate"
	"github.com/Astemirdum/room-reservation/reservation/internal/model"
	"github.com/pkg/errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid reservation state")
	ErrConflict     = errors.New("reservation conflict")
	ErrValidation   = errors.New("validation failed")
	ErrPersistence  = errors.New("persistence failure")
	ErrForbidden    = errors.New("forbidden")
)

const (
	MsgOverlapExists = "other reservation(s) on this room and date interval already exist"
	MsgSelfRejected  = "reservation cannot be accepted: other accepted reservation(s) overlap this date interval; " +
		"reservation status was changed to REJECTED"
)

// ConflictError is an overlap violation. When SelfRejected is set the
// reservation under accept was moved to REJECTED as a side effect and
// Reservation holds its new state.
type ConflictError struct {
	Message      string
	SelfRejected bool
	Reservation  *model.Reservation
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func NewConflict(msg string) *ConflictError {
	return &ConflictError{Message: msg}
}

func NewSelfRejected(r model.Reservation) *ConflictError {
	return &ConflictError{Message: MsgSelfRejected, SelfRejected: true, Reservation: &r}
}

type ValidationError struct {
	Fields []validate.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			msgs = append(msgs, f.Message)
			continue
		}
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(msgs, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func NewValidation(fields ...validate.FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func Field(name, msg string) validate.FieldError {
	return validate.FieldError{Field: name, Message: msg}
}

// PersistenceError wraps a store failure. The engine never retries it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

func InvalidState(status model.Status, action string) error {
	return errors.Wrapf(ErrInvalidState, "cannot %s reservation in status %s", action, status)
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Message string                `json:"message"`
	Errors  []validate.FieldError `json:"errors"`
}

type ConflictErrorResponse struct {
	Message      string             `json:"message"`
	SelfRejected bool               `json:"selfRejected"`
	Reservation  *model.Reservation `json:"reservation,omitempty"`
}
