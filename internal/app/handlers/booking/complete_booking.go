package booking

import (
	"context"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/handlers/support"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/clock"
)

const completeBookingKey = "booking.complete"

type CompleteBookingCommand struct {
	BookingID string
	OwnerID   string
}

func (c CompleteBookingCommand) Key() string { return completeBookingKey }

type CompleteBookingHandler struct {
	UoWFactory uow.Factory
	Clock      clock.Clock
}

// Handle closes out an approved stay after checkout day has passed.
func (h *CompleteBookingHandler) Handle(ctx context.Context, cmd CompleteBookingCommand) (*DecisionResult, error) {
	var result *DecisionResult
	err := support.RunInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		b, p, err := loadBookingWithPlace(ctx, unit, cmd.BookingID)
		if err != nil {
			return err
		}
		if err := p.OwnedBy(domainplace.UserID(cmd.OwnerID)); err != nil {
			return err
		}
		if err := b.Complete(now(h.Clock)); err != nil {
			return err
		}
		if err := unit.Bookings().Save(ctx, b); err != nil {
			return err
		}
		result = &DecisionResult{BookingID: string(b.ID), Status: string(b.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ commands.Handler[CompleteBookingCommand, *DecisionResult] = (*CompleteBookingHandler)(nil)
