package notification

import (
	"context"
	"errors"
	"time"

	"github.com/raburski/friends-place-sub000/internal/domain/place"
)

var (
	ErrNotFound     = errors.New("notification: not found")
	ErrNotRecipient = errors.New("notification: actor is not the recipient")
)

type NotificationID string

type Type string

const (
	TypeBookingRequested     Type = "booking_requested"
	TypeBookingApproved      Type = "booking_approved"
	TypeBookingDeclined      Type = "booking_declined"
	TypeBookingCanceled      Type = "booking_canceled"
	TypeAvailabilityConflict Type = "availability_conflict"
	TypePlaceDeactivated     Type = "place_deactivated"
)

// Payload keys consumed by downstream renderers. Dates are ISO-8601
// (2006-01-02); keep the key names stable.
const (
	KeyPlaceID   = "placeId"
	KeyBookingID = "bookingId"
	KeyPlaceName = "placeName"
	KeyStartDate = "startDate"
	KeyEndDate   = "endDate"
)

// DateLayout is the wire format for startDate/endDate payload values.
const DateLayout = "2006-01-02"

// Notification is a derived, append-only record of a state-transition event.
// It is never authoritative over booking or availability state.
type Notification struct {
	ID        NotificationID
	UserID    place.UserID
	Type      Type
	Payload   map[string]string
	ReadAt    *time.Time
	CreatedAt time.Time
}

type Repository interface {
	ByID(ctx context.Context, id NotificationID) (*Notification, error)
	Save(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, user place.UserID) ([]*Notification, error)
}

func (n *Notification) MarkRead(now time.Time) {
	if n.ReadAt != nil {
		return
	}
	at := now.UTC()
	n.ReadAt = &at
}
