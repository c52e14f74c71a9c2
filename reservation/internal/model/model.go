package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Modifiable reports whether the dates of a reservation in this status may be edited.
func (s Status) Modifiable() bool {
	return s == StatusPending || s == StatusAccepted
}

// Date is a calendar day, always held as UTC midnight.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q: expected YYYY-MM-DD", s)
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
	case nil:
		*d = Date{}
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// DateValue exposes the underlying time to the request validator so `required` works.
func DateValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(Date); ok {
		return d.Time
	}
	return nil
}

// Overlaps reports whether the inclusive ranges [a,b] and [c,d] share a day.
func Overlaps(a, b, c, d Date) bool {
	return !a.After(d.Time) && !c.After(b.Time)
}

const secondsPerDay = 24 * 60 * 60

// DaysInclusive counts calendar days from..to, both ends included.
func DaysInclusive(from, to Date) int64 {
	return (to.Unix()-from.Unix())/secondsPerDay + 1
}

type Interval struct {
	From Date
	To   Date
}

func (i Interval) Overlaps(o Interval) bool {
	return Overlaps(i.From, i.To, o.From, o.To)
}

func (i Interval) Days() int64 {
	return DaysInclusive(i.From, i.To)
}

type Reservation struct {
	ID          string          `json:"id" db:"id"`
	RoomID      string          `json:"roomId" db:"room_id"`
	UserID      string          `json:"userId" db:"user_id"`
	FromDate    Date            `json:"fromDate" db:"from_date"`
	ToDate      Date            `json:"toDate" db:"to_date"`
	PricePerDay decimal.Decimal `json:"pricePerDay" db:"price_per_day"`
	TotalPrice  decimal.Decimal `json:"totalPrice" db:"total_price"`
	Status      Status          `json:"status" db:"status"`
	CreateDate  time.Time       `json:"createDate" db:"create_date"`
	UpdateDate  time.Time       `json:"updateDate" db:"update_date"`
}

func (r Reservation) Interval() Interval {
	return Interval{From: r.FromDate, To: r.ToDate}
}

// Room is reference data owned by the room catalogue.
type Room struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	OwnerID     string          `json:"ownerId" db:"owner_id"`
	PricePerDay decimal.Decimal `json:"pricePerDay" db:"price_per_day"`
}

type CreateReservationRequest struct {
	RoomID      string          `json:"roomId" validate:"required"`
	UserID      string          `json:"-" validate:"required"`
	FromDate    Date            `json:"fromDate" validate:"required"`
	ToDate      Date            `json:"toDate" validate:"required"`
	PricePerDay decimal.Decimal `json:"pricePerDay"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

func (r CreateReservationRequest) Interval() Interval {
	return Interval{From: r.FromDate, To: r.ToDate}
}

type ModifyReservationRequest struct {
	FromDate Date `json:"fromDate" validate:"required"`
	ToDate   Date `json:"toDate" validate:"required"`
}

func (r ModifyReservationRequest) Interval() Interval {
	return Interval{From: r.FromDate, To: r.ToDate}
}

// ReservationQuery selects reservations of one room overlapping an optional interval.
type ReservationQuery struct {
	RoomID   string
	Interval *Interval
	Statuses []Status
}
