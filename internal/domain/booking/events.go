package booking

import (
	"time"

	"github.com/raburski/friends-place-sub000/internal/domain/shared/daterange"
)

type Requested struct {
	BookingID string
	PlaceID   string
	GuestID   string
	Range     daterange.DateRange
	At        time.Time
}

func (e Requested) EventName() string     { return "booking.requested" }
func (e Requested) AggregateID() string   { return e.BookingID }
func (e Requested) OccurredAt() time.Time { return e.At }

type Approved struct {
	BookingID string
	PlaceID   string
	GuestID   string
	Range     daterange.DateRange
	At        time.Time
}

func (e Approved) EventName() string     { return "booking.approved" }
func (e Approved) AggregateID() string   { return e.BookingID }
func (e Approved) OccurredAt() time.Time { return e.At }

type Declined struct {
	BookingID string
	PlaceID   string
	GuestID   string
	At        time.Time
}

func (e Declined) EventName() string     { return "booking.declined" }
func (e Declined) AggregateID() string   { return e.BookingID }
func (e Declined) OccurredAt() time.Time { return e.At }

type Canceled struct {
	BookingID string
	PlaceID   string
	GuestID   string
	Range     daterange.DateRange
	At        time.Time
}

func (e Canceled) EventName() string     { return "booking.canceled" }
func (e Canceled) AggregateID() string   { return e.BookingID }
func (e Canceled) OccurredAt() time.Time { return e.At }

type Completed struct {
	BookingID string
	PlaceID   string
	GuestID   string
	At        time.Time
}

func (e Completed) EventName() string     { return "booking.completed" }
func (e Completed) AggregateID() string   { return e.BookingID }
func (e Completed) OccurredAt() time.Time { return e.At }
