package availability

import (
	"context"

	"github.com/raburski/friends-place-sub000/internal/app/dto"
	"github.com/raburski/friends-place-sub000/internal/app/handlers/support"
	"github.com/raburski/friends-place-sub000/internal/app/queries"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

const getCalendarKey = "availability.calendar"

type GetCalendarQuery struct {
	PlaceID string
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

type GetCalendarHandler struct {
	UoWFactory uow.Factory
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.AvailabilityCalendar, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.AvailabilityCalendar{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	p, err := unit.Places().ByID(execCtx, domainplace.PlaceID(q.PlaceID))
	if err != nil {
		return dto.AvailabilityCalendar{}, err
	}
	windows, err := unit.Availability().ListByPlace(execCtx, p.ID)
	if err != nil {
		return dto.AvailabilityCalendar{}, err
	}
	out := dto.AvailabilityCalendar{PlaceID: string(p.ID), Ranges: make([]dto.AvailabilityRange, 0, len(windows))}
	for _, w := range windows {
		out.Ranges = append(out.Ranges, dto.MapAvailabilityRange(w))
	}
	return out, nil
}

var _ queries.Handler[GetCalendarQuery, dto.AvailabilityCalendar] = (*GetCalendarHandler)(nil)
