package booking

import (
	"context"
	"time"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/handlers/support"
	"github.com/raburski/friends-place-sub000/internal/app/notify"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/clock"
)

const (
	approveBookingKey = "booking.approve"
	declineBookingKey = "booking.decline"
)

type ApproveBookingCommand struct {
	BookingID string
	OwnerID   string
}

func (c ApproveBookingCommand) Key() string { return approveBookingKey }

type DeclineBookingCommand struct {
	BookingID string
	OwnerID   string
}

func (c DeclineBookingCommand) Key() string { return declineBookingKey }

type DecisionResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type ApproveBookingHandler struct {
	UoWFactory uow.Factory
	Clock      clock.Clock
}

// Handle approves a pending request. Approval is the second, authoritative
// conflict gate: other bookings may have been approved since the request was
// made, so both gates re-run against the current ledger before the
// transition commits.
func (h *ApproveBookingHandler) Handle(ctx context.Context, cmd ApproveBookingCommand) (*DecisionResult, error) {
	var result *DecisionResult
	err := support.RunInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		b, p, err := loadBookingWithPlace(ctx, unit, cmd.BookingID)
		if err != nil {
			return err
		}
		if err := p.OwnedBy(domainplace.UserID(cmd.OwnerID)); err != nil {
			return err
		}
		if b.Status != domainbooking.StatusRequested {
			return domainbooking.ErrInvalidStatus
		}

		placeBookings, err := unit.Bookings().ListByPlace(ctx, p.ID)
		if err != nil {
			return err
		}
		if len(domainbooking.ApprovedConflicts(b.Range, placeBookings, b.ID)) > 0 {
			return domainbooking.ErrPlaceUnavailable
		}
		guestBookings, err := unit.Bookings().ListByGuest(ctx, b.GuestID)
		if err != nil {
			return err
		}
		if len(domainbooking.GuestConflicts(b.Range, guestBookings, b.ID)) > 0 {
			return domainbooking.ErrGuestUnavailable
		}

		if err := b.Approve(now(h.Clock)); err != nil {
			return err
		}
		if err := unit.Bookings().Save(ctx, b); err != nil {
			return err
		}
		// Approvals for the same place serialize on the place version: two
		// racing approvals of overlapping requests touch distinct booking
		// documents, so without this write both could commit.
		if err := unit.Places().Save(ctx, p); err != nil {
			return err
		}

		notify.Stage(ctx, notify.Message{
			UserID:  b.GuestID,
			Type:    domainnotification.TypeBookingApproved,
			Payload: bookingPayload(p, b),
		})

		result = &DecisionResult{BookingID: string(b.ID), Status: string(b.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type DeclineBookingHandler struct {
	UoWFactory uow.Factory
	Clock      clock.Clock
}

func (h *DeclineBookingHandler) Handle(ctx context.Context, cmd DeclineBookingCommand) (*DecisionResult, error) {
	var result *DecisionResult
	err := support.RunInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		b, p, err := loadBookingWithPlace(ctx, unit, cmd.BookingID)
		if err != nil {
			return err
		}
		if err := p.OwnedBy(domainplace.UserID(cmd.OwnerID)); err != nil {
			return err
		}
		if err := b.Decline(now(h.Clock)); err != nil {
			return err
		}
		if err := unit.Bookings().Save(ctx, b); err != nil {
			return err
		}

		notify.Stage(ctx, notify.Message{
			UserID:  b.GuestID,
			Type:    domainnotification.TypeBookingDeclined,
			Payload: bookingPayload(p, b),
		})

		result = &DecisionResult{BookingID: string(b.ID), Status: string(b.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func loadBookingWithPlace(ctx context.Context, unit uow.UnitOfWork, id string) (*domainbooking.Booking, *domainplace.Place, error) {
	b, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(id))
	if err != nil {
		return nil, nil, err
	}
	p, err := unit.Places().ByID(ctx, b.PlaceID)
	if err != nil {
		return nil, nil, err
	}
	return b, p, nil
}

func now(c clock.Clock) time.Time {
	if c != nil {
		return c.Now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[ApproveBookingCommand, *DecisionResult] = (*ApproveBookingHandler)(nil)
var _ commands.Handler[DeclineBookingCommand, *DecisionResult] = (*DeclineBookingHandler)(nil)
