package booking

import (
	"context"
	"errors"
	"time"

	"github.com/raburski/friends-place-sub000/internal/domain/place"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/daterange"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/events"
)

var (
	ErrNotFound         = errors.New("booking: not found")
	ErrNotParticipant   = errors.New("booking: actor is neither guest nor owner")
	ErrInvalidStatus    = errors.New("booking: invalid status transition")
	ErrUnknownStatus    = errors.New("booking: unknown status value")
	ErrGuestRequired    = errors.New("booking: guest id is required")
	ErrPlaceUnavailable = errors.New("booking: place already has a live booking for these dates")
	ErrGuestUnavailable = errors.New("booking: guest already has a live booking for these dates")
	ErrNotFinished      = errors.New("booking: stay has not ended yet")
)

type BookingID string

type Status string

const (
	StatusRequested Status = "requested"
	StatusApproved  Status = "approved"
	StatusDeclined  Status = "declined"
	StatusCanceled  Status = "canceled"
	StatusCompleted Status = "completed"
)

// ParseStatus rejects values outside the closed status set. Statuses arrive
// as strings from storage and the API layer, so every load goes through here.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusRequested, StatusApproved, StatusDeclined, StatusCanceled, StatusCompleted:
		return Status(raw), nil
	}
	return "", ErrUnknownStatus
}

// Live reports whether the booking still claims its date range: only
// requested and approved bookings participate in conflict checks.
func (s Status) Live() bool {
	return s == StatusRequested || s == StatusApproved
}

// Terminal statuses permit no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDeclined || s == StatusCanceled || s == StatusCompleted
}

// Booking is a guest's request for a date range at a place. It is never
// hard-deleted; terminal statuses keep the history.
type Booking struct {
	ID        BookingID
	PlaceID   place.PlaceID
	GuestID   place.UserID
	Range     daterange.DateRange
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, b *Booking) error
	ListByPlace(ctx context.Context, id place.PlaceID) ([]*Booking, error)
	ListByGuest(ctx context.Context, guest place.UserID) ([]*Booking, error)
}

type CreateParams struct {
	ID      BookingID
	PlaceID place.PlaceID
	GuestID place.UserID
	Range   daterange.DateRange
	Now     time.Time
}

func New(params CreateParams) (*Booking, error) {
	if params.GuestID == "" {
		return nil, ErrGuestRequired
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	now := params.Now.UTC()
	b := &Booking{
		ID:        params.ID,
		PlaceID:   params.PlaceID,
		GuestID:   params.GuestID,
		Range:     params.Range,
		Status:    StatusRequested,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.Record(Requested{BookingID: string(b.ID), PlaceID: string(b.PlaceID), GuestID: string(b.GuestID), Range: b.Range, At: now})
	return b, nil
}

func (b *Booking) Approve(now time.Time) error {
	if b.Status != StatusRequested {
		return ErrInvalidStatus
	}
	b.transition(StatusApproved, now)
	b.Record(Approved{BookingID: string(b.ID), PlaceID: string(b.PlaceID), GuestID: string(b.GuestID), Range: b.Range, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Decline(now time.Time) error {
	if b.Status != StatusRequested {
		return ErrInvalidStatus
	}
	b.transition(StatusDeclined, now)
	b.Record(Declined{BookingID: string(b.ID), PlaceID: string(b.PlaceID), GuestID: string(b.GuestID), At: b.UpdatedAt})
	return nil
}

// Cancel is allowed from any non-terminal status; both the guest and the
// place owner may trigger it.
func (b *Booking) Cancel(now time.Time) error {
	switch b.Status {
	case StatusRequested, StatusApproved:
	default:
		return ErrInvalidStatus
	}
	b.transition(StatusCanceled, now)
	b.Record(Canceled{BookingID: string(b.ID), PlaceID: string(b.PlaceID), GuestID: string(b.GuestID), Range: b.Range, At: b.UpdatedAt})
	return nil
}

// Complete closes out an approved stay once its range has fully elapsed.
func (b *Booking) Complete(now time.Time) error {
	if b.Status != StatusApproved {
		return ErrInvalidStatus
	}
	if daterange.Day(now).Before(b.Range.End) {
		return ErrNotFinished
	}
	b.transition(StatusCompleted, now)
	b.Record(Completed{BookingID: string(b.ID), PlaceID: string(b.PlaceID), GuestID: string(b.GuestID), At: b.UpdatedAt})
	return nil
}

// Future reports whether the stay has not started yet relative to now.
// Deactivation only cascades to these; in-progress stays are left alone.
func (b *Booking) Future(now time.Time) bool {
	return b.Range.Start.After(daterange.Day(now))
}

func (b *Booking) transition(next Status, now time.Time) {
	b.Status = next
	b.UpdatedAt = now.UTC()
}
