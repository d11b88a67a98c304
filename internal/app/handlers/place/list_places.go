package place

import (
	"context"

	"github.com/raburski/friends-place-sub000/internal/app/dto"
	"github.com/raburski/friends-place-sub000/internal/app/handlers/support"
	"github.com/raburski/friends-place-sub000/internal/app/queries"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

const (
	getPlaceKey   = "place.get"
	listPlacesKey = "place.list"
)

type GetPlaceQuery struct {
	PlaceID string
}

func (q GetPlaceQuery) Key() string { return getPlaceKey }

type GetPlaceHandler struct {
	UoWFactory uow.Factory
}

func (h *GetPlaceHandler) Handle(ctx context.Context, q GetPlaceQuery) (dto.PlaceSummary, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.PlaceSummary{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	p, err := unit.Places().ByID(execCtx, domainplace.PlaceID(q.PlaceID))
	if err != nil {
		return dto.PlaceSummary{}, err
	}
	return dto.MapPlaceSummary(p), nil
}

type ListOwnerPlacesQuery struct {
	OwnerID string
}

func (q ListOwnerPlacesQuery) Key() string { return listPlacesKey }

type ListOwnerPlacesHandler struct {
	UoWFactory uow.Factory
}

func (h *ListOwnerPlacesHandler) Handle(ctx context.Context, q ListOwnerPlacesQuery) (dto.PlaceCollection, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.PlaceCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	places, err := unit.Places().ListByOwner(execCtx, domainplace.UserID(q.OwnerID))
	if err != nil {
		return dto.PlaceCollection{}, err
	}
	items := make([]dto.PlaceSummary, 0, len(places))
	for _, p := range places {
		items = append(items, dto.MapPlaceSummary(p))
	}
	return dto.PlaceCollection{Items: items}, nil
}

var _ queries.Handler[GetPlaceQuery, dto.PlaceSummary] = (*GetPlaceHandler)(nil)
var _ queries.Handler[ListOwnerPlacesQuery, dto.PlaceCollection] = (*ListOwnerPlacesHandler)(nil)
