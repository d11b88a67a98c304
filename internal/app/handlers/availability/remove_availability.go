package availability

import (
	"context"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/handlers/support"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainavailability "github.com/raburski/friends-place-sub000/internal/domain/availability"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

const removeAvailabilityKey = "availability.remove"

type RemoveAvailabilityCommand struct {
	RangeID string
	OwnerID string
}

func (c RemoveAvailabilityCommand) Key() string { return removeAvailabilityKey }

type RemoveAvailabilityResult struct {
	RangeID string `json:"range_id"`
}

type RemoveAvailabilityHandler struct {
	UoWFactory uow.Factory
}

// Handle deletes a window. Existing bookings are deliberately not re-checked:
// shrinking availability never cancels a stay, unlike place deactivation.
func (h *RemoveAvailabilityHandler) Handle(ctx context.Context, cmd RemoveAvailabilityCommand) (*RemoveAvailabilityResult, error) {
	var result *RemoveAvailabilityResult
	err := support.RunInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		r, err := unit.Availability().ByID(ctx, domainavailability.RangeID(cmd.RangeID))
		if err != nil {
			return err
		}
		p, err := unit.Places().ByID(ctx, r.PlaceID)
		if err != nil {
			return err
		}
		if err := p.OwnedBy(domainplace.UserID(cmd.OwnerID)); err != nil {
			return err
		}
		if err := unit.Availability().Delete(ctx, r.ID); err != nil {
			return err
		}
		result = &RemoveAvailabilityResult{RangeID: string(r.ID)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ commands.Handler[RemoveAvailabilityCommand, *RemoveAvailabilityResult] = (*RemoveAvailabilityHandler)(nil)
