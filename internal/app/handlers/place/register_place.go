package place

import (
	"context"
	"time"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/handlers/support"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/clock"
)

const registerPlaceKey = "place.register"

type RegisterPlaceCommand struct {
	CommandID   string
	OwnerID     string
	Name        string
	Description string
}

func (c RegisterPlaceCommand) Key() string { return registerPlaceKey }

type RegisterPlaceResult struct {
	PlaceID string `json:"place_id"`
}

type RegisterPlaceHandler struct {
	UoWFactory uow.Factory
	Clock      clock.Clock
}

func (h *RegisterPlaceHandler) Handle(ctx context.Context, cmd RegisterPlaceCommand) (*RegisterPlaceResult, error) {
	var result *RegisterPlaceResult
	err := support.RunInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		p, err := domainplace.New(domainplace.CreateParams{
			ID:          domainplace.PlaceID(cmd.CommandID),
			OwnerID:     domainplace.UserID(cmd.OwnerID),
			Name:        cmd.Name,
			Description: cmd.Description,
			Now:         now(h.Clock),
		})
		if err != nil {
			return err
		}
		if err := unit.Places().Save(ctx, p); err != nil {
			return err
		}
		result = &RegisterPlaceResult{PlaceID: string(p.ID)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func now(c clock.Clock) time.Time {
	if c != nil {
		return c.Now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[RegisterPlaceCommand, *RegisterPlaceResult] = (*RegisterPlaceHandler)(nil)
