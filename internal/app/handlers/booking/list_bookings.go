package booking

import (
	"context"
	"strings"

	"github.com/raburski/friends-place-sub000/internal/app/dto"
	"github.com/raburski/friends-place-sub000/internal/app/handlers/support"
	"github.com/raburski/friends-place-sub000/internal/app/queries"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

const (
	listGuestBookingsKey = "booking.list.guest"
	listPlaceBookingsKey = "booking.list.place"
)

type ListGuestBookingsQuery struct {
	GuestID string
	Status  string
}

func (q ListGuestBookingsQuery) Key() string { return listGuestBookingsKey }

type ListGuestBookingsHandler struct {
	UoWFactory uow.Factory
}

func (h *ListGuestBookingsHandler) Handle(ctx context.Context, q ListGuestBookingsQuery) (dto.BookingCollection, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	bookings, err := unit.Bookings().ListByGuest(execCtx, domainplace.UserID(q.GuestID))
	if err != nil {
		return dto.BookingCollection{}, err
	}

	placeCache := make(map[domainplace.PlaceID]*domainplace.Place)
	items := make([]dto.BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		if !statusMatches(b, q.Status) {
			continue
		}
		p := placeCache[b.PlaceID]
		if p == nil {
			if loaded, err := unit.Places().ByID(execCtx, b.PlaceID); err == nil {
				p = loaded
				placeCache[b.PlaceID] = loaded
			}
		}
		items = append(items, dto.MapBookingSummary(b, p))
	}
	return dto.BookingCollection{Items: items}, nil
}

type ListPlaceBookingsQuery struct {
	PlaceID string
	OwnerID string
	Status  string
}

func (q ListPlaceBookingsQuery) Key() string { return listPlaceBookingsKey }

type ListPlaceBookingsHandler struct {
	UoWFactory uow.Factory
}

func (h *ListPlaceBookingsHandler) Handle(ctx context.Context, q ListPlaceBookingsQuery) (dto.BookingCollection, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	p, err := unit.Places().ByID(execCtx, domainplace.PlaceID(q.PlaceID))
	if err != nil {
		return dto.BookingCollection{}, err
	}
	if err := p.OwnedBy(domainplace.UserID(q.OwnerID)); err != nil {
		return dto.BookingCollection{}, err
	}

	bookings, err := unit.Bookings().ListByPlace(execCtx, p.ID)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	items := make([]dto.BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		if !statusMatches(b, q.Status) {
			continue
		}
		items = append(items, dto.MapBookingSummary(b, p))
	}
	return dto.BookingCollection{Items: items}, nil
}

func statusMatches(b *domainbooking.Booking, filter string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	return string(b.Status) == filter
}

var _ queries.Handler[ListGuestBookingsQuery, dto.BookingCollection] = (*ListGuestBookingsHandler)(nil)
var _ queries.Handler[ListPlaceBookingsQuery, dto.BookingCollection] = (*ListPlaceBookingsHandler)(nil)
