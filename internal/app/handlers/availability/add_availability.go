package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/handlers/support"
	"github.com/raburski/friends-place-sub000/internal/app/notify"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainavailability "github.com/raburski/friends-place-sub000/internal/domain/availability"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/clock"
	domainrange "github.com/raburski/friends-place-sub000/internal/domain/shared/daterange"
)

const addAvailabilityKey = "availability.add"

type RangeInput struct {
	Start time.Time
	End   time.Time
}

type AddAvailabilityCommand struct {
	PlaceID string
	OwnerID string
	Ranges  []RangeInput
}

func (c AddAvailabilityCommand) Key() string { return addAvailabilityKey }

type AddAvailabilityResult struct {
	RangeIDs []string `json:"range_ids"`
}

type AddAvailabilityHandler struct {
	UoWFactory uow.Factory
	Clock      clock.Clock
}

// Handle persists every syntactically valid window verbatim. Windows are not
// merged, deduplicated or checked against each other; redundant windows are
// accepted behavior. Live bookings overlapping a new window get an advisory
// availability_conflict notification but are never altered.
func (h *AddAvailabilityHandler) Handle(ctx context.Context, cmd AddAvailabilityCommand) (*AddAvailabilityResult, error) {
	var result *AddAvailabilityResult
	err := support.RunInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		p, err := unit.Places().ByID(ctx, domainplace.PlaceID(cmd.PlaceID))
		if err != nil {
			return err
		}
		if err := p.OwnedBy(domainplace.UserID(cmd.OwnerID)); err != nil {
			return err
		}

		now := h.nowUTC()
		added := make([]*domainavailability.Range, 0, len(cmd.Ranges))
		for _, in := range cmd.Ranges {
			dr, err := domainrange.NewWindow(in.Start, in.End)
			if err != nil {
				continue
			}
			added = append(added, &domainavailability.Range{
				ID:        domainavailability.RangeID(uuid.NewString()),
				PlaceID:   p.ID,
				Range:     dr,
				CreatedAt: now,
			})
		}
		if len(added) == 0 {
			return domainavailability.ErrNoValidRanges
		}
		if err := unit.Availability().Add(ctx, added); err != nil {
			return err
		}

		bookings, err := unit.Bookings().ListByPlace(ctx, p.ID)
		if err != nil {
			return err
		}
		for _, b := range domainavailability.ConflictingBookings(added, bookings) {
			notify.Stage(ctx, notify.Message{
				UserID: b.GuestID,
				Type:   domainnotification.TypeAvailabilityConflict,
				Payload: map[string]string{
					domainnotification.KeyPlaceID:   string(p.ID),
					domainnotification.KeyBookingID: string(b.ID),
					domainnotification.KeyPlaceName: p.Name,
					domainnotification.KeyStartDate: b.Range.Start.Format(domainnotification.DateLayout),
					domainnotification.KeyEndDate:   b.Range.End.Format(domainnotification.DateLayout),
				},
			})
		}

		ids := make([]string, 0, len(added))
		for _, r := range added {
			ids = append(ids, string(r.ID))
		}
		result = &AddAvailabilityResult{RangeIDs: ids}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (h *AddAvailabilityHandler) nowUTC() time.Time {
	if h.Clock != nil {
		return h.Clock.Now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[AddAvailabilityCommand, *AddAvailabilityResult] = (*AddAvailabilityHandler)(nil)
