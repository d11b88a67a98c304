package place

import (
	"context"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/handlers/support"
	"github.com/raburski/friends-place-sub000/internal/app/notify"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/clock"
)

const deactivatePlaceKey = "place.deactivate"

type DeactivatePlaceCommand struct {
	PlaceID string
	OwnerID string
}

func (c DeactivatePlaceCommand) Key() string { return deactivatePlaceKey }

type DeactivatePlaceResult struct {
	PlaceID          string   `json:"place_id"`
	CanceledBookings []string `json:"canceled_bookings"`
}

type DeactivatePlaceHandler struct {
	UoWFactory uow.Factory
	Clock      clock.Clock
}

// Handle deactivates the place and cascades cancellation to every live
// booking that has not started yet. Find, cancel and notify all run in one
// unit of work. Stays with Start <= now are left untouched even when not
// completed; ongoing visits are never retroactively canceled.
func (h *DeactivatePlaceHandler) Handle(ctx context.Context, cmd DeactivatePlaceCommand) (*DeactivatePlaceResult, error) {
	var result *DeactivatePlaceResult
	err := support.RunInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		p, err := unit.Places().ByID(ctx, domainplace.PlaceID(cmd.PlaceID))
		if err != nil {
			return err
		}
		if err := p.OwnedBy(domainplace.UserID(cmd.OwnerID)); err != nil {
			return err
		}
		nowAt := now(h.Clock)
		if err := p.Deactivate(nowAt); err != nil {
			return err
		}
		if err := unit.Places().Save(ctx, p); err != nil {
			return err
		}

		bookings, err := unit.Bookings().ListByPlace(ctx, p.ID)
		if err != nil {
			return err
		}
		var canceled []string
		for _, b := range bookings {
			if !b.Status.Live() || !b.Future(nowAt) {
				continue
			}
			if err := b.Cancel(nowAt); err != nil {
				return err
			}
			if err := unit.Bookings().Save(ctx, b); err != nil {
				return err
			}
			canceled = append(canceled, string(b.ID))
			notify.Stage(ctx, notify.Message{
				UserID: b.GuestID,
				Type:   domainnotification.TypePlaceDeactivated,
				Payload: map[string]string{
					domainnotification.KeyPlaceID:   string(p.ID),
					domainnotification.KeyBookingID: string(b.ID),
					domainnotification.KeyPlaceName: p.Name,
					domainnotification.KeyStartDate: b.Range.Start.Format(domainnotification.DateLayout),
					domainnotification.KeyEndDate:   b.Range.End.Format(domainnotification.DateLayout),
				},
			})
		}
		result = &DeactivatePlaceResult{PlaceID: string(p.ID), CanceledBookings: canceled}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ commands.Handler[DeactivatePlaceCommand, *DeactivatePlaceResult] = (*DeactivatePlaceHandler)(nil)
