package model

import "time"

type EventType string

const (
	EventCreated         EventType = "CREATED"
	EventAccepted        EventType = "ACCEPTED"
	EventRejected        EventType = "REJECTED"
	EventCascadeRejected EventType = "CASCADE_REJECTED"
	EventSelfRejected    EventType = "SELF_REJECTED"
	EventCancelled       EventType = "CANCELLED"
	EventModified        EventType = "MODIFIED"
	EventDeleted         EventType = "DELETED"
)

// ReservationEvent is published after every committed state change.
type ReservationEvent struct {
	Type          EventType `json:"type"`
	ReservationID string    `json:"reservationId"`
	RoomID        string    `json:"roomId"`
	UserID        string    `json:"userId"`
	Status        Status    `json:"status"`
	FromDate      Date      `json:"fromDate"`
	ToDate        Date      `json:"toDate"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewEvent(typ EventType, r Reservation, ts time.Time) ReservationEvent {
	return ReservationEvent{
		Type:          typ,
		ReservationID: r.ID,
		RoomID:        r.RoomID,
		UserID:        r.UserID,
		Status:        r.Status,
		FromDate:      r.FromDate,
		ToDate:        r.ToDate,
		Timestamp:     ts,
	}
}
