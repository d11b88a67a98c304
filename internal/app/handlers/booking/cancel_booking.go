package booking

import (
	"context"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/handlers/support"
	"github.com/raburski/friends-place-sub000/internal/app/notify"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/clock"
)

const cancelBookingKey = "booking.cancel"

type CancelBookingCommand struct {
	BookingID string
	ActorID   string
}

func (c CancelBookingCommand) Key() string { return cancelBookingKey }

type CancelBookingHandler struct {
	UoWFactory uow.Factory
	Clock      clock.Clock
}

// Handle cancels a live booking. Either side may cancel; the counterparty is
// notified so a guest-initiated cancel reaches the owner and vice versa.
func (h *CancelBookingHandler) Handle(ctx context.Context, cmd CancelBookingCommand) (*DecisionResult, error) {
	var result *DecisionResult
	err := support.RunInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		b, p, err := loadBookingWithPlace(ctx, unit, cmd.BookingID)
		if err != nil {
			return err
		}
		actor := domainplace.UserID(cmd.ActorID)
		if actor != b.GuestID && actor != p.OwnerID {
			return domainbooking.ErrNotParticipant
		}
		if err := b.Cancel(now(h.Clock)); err != nil {
			return err
		}
		if err := unit.Bookings().Save(ctx, b); err != nil {
			return err
		}

		recipient := b.GuestID
		if actor == b.GuestID {
			recipient = p.OwnerID
		}
		notify.Stage(ctx, notify.Message{
			UserID:  recipient,
			Type:    domainnotification.TypeBookingCanceled,
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

var _ commands.Handler[CancelBookingCommand, *DecisionResult] = (*CancelBookingHandler)(nil)
