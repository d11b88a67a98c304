package booking

import (
	"context"
	"time"

	"github.com/raburski/friends-place-sub000/internal/app/middleware"
	"github.com/raburski/friends-place-sub000/internal/app/notify"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainavailability "github.com/raburski/friends-place-sub000/internal/domain/availability"
	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/clock"
	domainrange "github.com/raburski/friends-place-sub000/internal/domain/shared/daterange"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/handlers/support"
)

const requestBookingKey = "booking.request"

type RequestBookingCommand struct {
	CommandID       string
	PlaceID         string
	GuestID         string
	Start           time.Time
	End             time.Time
	IdempotencyKeyV string
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

func (c RequestBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c RequestBookingCommand) ResultPrototype() any { return &RequestBookingResult{} }

type RequestBookingResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type RequestBookingHandler struct {
	UoWFactory uow.Factory
	Clock      clock.Clock
}

// Handle runs the request preconditions in their contractual order; the
// first failure wins. The whole read-check-write sequence executes inside
// one unit of work so two overlapping requests cannot both pass the gates.
func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (*RequestBookingResult, error) {
	var result *RequestBookingResult
	err := support.RunInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		p, err := unit.Places().ByID(ctx, domainplace.PlaceID(cmd.PlaceID))
		if err != nil {
			return err
		}
		if !p.IsActive {
			return domainplace.ErrInactive
		}
		if domainplace.UserID(cmd.GuestID) == p.OwnerID {
			return domainplace.ErrCannotBookOwn
		}

		dr, err := domainrange.New(cmd.Start, cmd.End)
		if err != nil {
			return err
		}

		windows, err := unit.Availability().ListByPlace(ctx, p.ID)
		if err != nil {
			return err
		}
		if !domainavailability.Covers(dr, windows) {
			return domainavailability.ErrNoAvailability
		}

		placeBookings, err := unit.Bookings().ListByPlace(ctx, p.ID)
		if err != nil {
			return err
		}
		if len(domainbooking.LiveConflicts(dr, placeBookings)) > 0 {
			return domainbooking.ErrPlaceUnavailable
		}

		guestBookings, err := unit.Bookings().ListByGuest(ctx, domainplace.UserID(cmd.GuestID))
		if err != nil {
			return err
		}
		if len(domainbooking.GuestConflicts(dr, guestBookings, "")) > 0 {
			return domainbooking.ErrGuestUnavailable
		}

		b, err := domainbooking.New(domainbooking.CreateParams{
			ID:      domainbooking.BookingID(cmd.CommandID),
			PlaceID: p.ID,
			GuestID: domainplace.UserID(cmd.GuestID),
			Range:   dr,
			Now:     now(h.Clock),
		})
		if err != nil {
			return err
		}
		if err := unit.Bookings().Save(ctx, b); err != nil {
			return err
		}
		// Booking writers for the same place must collide: saving the place
		// bumps its version, so of two racing units one fails the version
		// filter and aborts instead of committing past a stale conflict check.
		if err := unit.Places().Save(ctx, p); err != nil {
			return err
		}

		notify.Stage(ctx, notify.Message{
			UserID:  p.OwnerID,
			Type:    domainnotification.TypeBookingRequested,
			Payload: bookingPayload(p, b),
		})

		result = &RequestBookingResult{BookingID: string(b.ID), Status: string(b.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func bookingPayload(p *domainplace.Place, b *domainbooking.Booking) map[string]string {
	return map[string]string{
		domainnotification.KeyPlaceID:   string(p.ID),
		domainnotification.KeyBookingID: string(b.ID),
		domainnotification.KeyPlaceName: p.Name,
		domainnotification.KeyStartDate: b.Range.Start.Format(domainnotification.DateLayout),
		domainnotification.KeyEndDate:   b.Range.End.Format(domainnotification.DateLayout),
	}
}

var _ commands.Handler[RequestBookingCommand, *RequestBookingResult] = (*RequestBookingHandler)(nil)
var _ middleware.IdempotentCommand = RequestBookingCommand{}
