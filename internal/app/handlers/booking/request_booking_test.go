package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raburski/friends-place-sub000/internal/app/notify"
	domainavailability "github.com/raburski/friends-place-sub000/internal/domain/availability"
	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/clock"
	domainrange "github.com/raburski/friends-place-sub000/internal/domain/shared/daterange"
	"github.com/raburski/friends-place-sub000/internal/infra/storage/memory"
)

func day(d int) time.Time {
	return time.Date(2026, time.September, d, 0, 0, 0, 0, time.UTC)
}

type env struct {
	places        *memory.PlaceRepository
	bookings      *memory.BookingRepository
	availability  *memory.AvailabilityRepository
	notifications *memory.NotificationRepository
	factory       *memory.Factory
	clock         clock.Fixed
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		places:        memory.NewPlaceRepository(),
		bookings:      memory.NewBookingRepository(),
		availability:  memory.NewAvailabilityRepository(),
		notifications: memory.NewNotificationRepository(),
		clock:         clock.Fixed{At: time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)},
	}
	e.factory = &memory.Factory{
		PlacesRepo:        e.places,
		BookingsRepo:      e.bookings,
		AvailabilityRepo:  e.availability,
		NotificationsRepo: e.notifications,
	}
	return e
}

func (e *env) seedPlace(t *testing.T, id, owner string) *domainplace.Place {
	t.Helper()
	p, err := domainplace.New(domainplace.CreateParams{
		ID:      domainplace.PlaceID(id),
		OwnerID: domainplace.UserID(owner),
		Name:    "Lake cabin",
		Now:     e.clock.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, e.places.Save(context.Background(), p))
	return p
}

func (e *env) seedWindow(t *testing.T, id, placeID string, startDay, endDay int) {
	t.Helper()
	dr, err := domainrange.NewWindow(day(startDay), day(endDay))
	require.NoError(t, err)
	require.NoError(t, e.availability.Add(context.Background(), []*domainavailability.Range{{
		ID:        domainavailability.RangeID(id),
		PlaceID:   domainplace.PlaceID(placeID),
		Range:     dr,
		CreatedAt: e.clock.Now(),
	}}))
}

func (e *env) seedBooking(t *testing.T, id, placeID, guest string, status domainbooking.Status, startDay, endDay int) *domainbooking.Booking {
	t.Helper()
	dr, err := domainrange.New(day(startDay), day(endDay))
	require.NoError(t, err)
	b, err := domainbooking.New(domainbooking.CreateParams{
		ID:      domainbooking.BookingID(id),
		PlaceID: domainplace.PlaceID(placeID),
		GuestID: domainplace.UserID(guest),
		Range:   dr,
		Now:     e.clock.Now(),
	})
	require.NoError(t, err)
	b.Status = status
	require.NoError(t, e.bookings.Save(context.Background(), b))
	return b
}

func stagedCtx() (context.Context, *notify.Buffer) {
	return notify.WithBuffer(context.Background())
}

func TestRequestBookingHappyPath(t *testing.T) {
	e := newEnv(t)
	e.seedPlace(t, "pl-1", "olivia")
	e.seedWindow(t, "w1", "pl-1", 1, 30)
	h := &RequestBookingHandler{UoWFactory: e.factory, Clock: e.clock}

	ctx, buf := stagedCtx()
	res, err := h.Handle(ctx, RequestBookingCommand{
		CommandID: "bk-1", PlaceID: "pl-1", GuestID: "gary",
		Start: day(10), End: day(15),
	})
	require.NoError(t, err)
	assert.Equal(t, "bk-1", res.BookingID)
	assert.Equal(t, "requested", res.Status)

	stored, err := e.bookings.ByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusRequested, stored.Status)

	msgs := buf.Drain()
	require.Len(t, msgs, 1)
	assert.Equal(t, domainplace.UserID("olivia"), msgs[0].UserID)
	assert.Equal(t, domainnotification.TypeBookingRequested, msgs[0].Type)
	assert.Equal(t, map[string]string{
		"placeId":   "pl-1",
		"bookingId": "bk-1",
		"placeName": "Lake cabin",
		"startDate": "2026-09-10",
		"endDate":   "2026-09-15",
	}, msgs[0].Payload)
}

func TestRequestBookingOwnPlace(t *testing.T) {
	e := newEnv(t)
	e.seedPlace(t, "pl-1", "olivia")
	e.seedWindow(t, "w1", "pl-1", 1, 30)
	h := &RequestBookingHandler{UoWFactory: e.factory, Clock: e.clock}

	_, err := h.Handle(context.Background(), RequestBookingCommand{
		CommandID: "bk-1", PlaceID: "pl-1", GuestID: "olivia",
		Start: day(10), End: day(15),
	})
	assert.ErrorIs(t, err, domainplace.ErrCannotBookOwn)
}

func TestRequestBookingInactivePlace(t *testing.T) {
	e := newEnv(t)
	p := e.seedPlace(t, "pl-1", "olivia")
	require.NoError(t, p.Deactivate(e.clock.Now()))
	require.NoError(t, e.places.Save(context.Background(), p))
	h := &RequestBookingHandler{UoWFactory: e.factory, Clock: e.clock}

	_, err := h.Handle(context.Background(), RequestBookingCommand{
		CommandID: "bk-1", PlaceID: "pl-1", GuestID: "gary",
		Start: day(10), End: day(15),
	})
	assert.ErrorIs(t, err, domainplace.ErrInactive)
}

func TestRequestBookingUnknownPlace(t *testing.T) {
	e := newEnv(t)
	h := &RequestBookingHandler{UoWFactory: e.factory, Clock: e.clock}

	_, err := h.Handle(context.Background(), RequestBookingCommand{
		CommandID: "bk-1", PlaceID: "nope", GuestID: "gary",
		Start: day(10), End: day(15),
	})
	assert.ErrorIs(t, err, domainplace.ErrNotFound)
}

func TestRequestBookingOutsideAvailability(t *testing.T) {
	e := newEnv(t)
	e.seedPlace(t, "pl-1", "olivia")
	e.seedWindow(t, "w1", "pl-1", 1, 10)
	e.seedWindow(t, "w2", "pl-1", 10, 20)
	h := &RequestBookingHandler{UoWFactory: e.factory, Clock: e.clock}

	// Spans two adjoining windows; no single window covers it.
	_, err := h.Handle(context.Background(), RequestBookingCommand{
		CommandID: "bk-1", PlaceID: "pl-1", GuestID: "gary",
		Start: day(5), End: day(15),
	})
	assert.ErrorIs(t, err, domainavailability.ErrNoAvailability)
}

func TestRequestBookingBlockedByPendingRequest(t *testing.T) {
	e := newEnv(t)
	e.seedPlace(t, "pl-1", "olivia")
	e.seedWindow(t, "w1", "pl-1", 1, 30)
	e.seedBooking(t, "bk-first", "pl-1", "hana", domainbooking.StatusRequested, 10, 15)
	h := &RequestBookingHandler{UoWFactory: e.factory, Clock: e.clock}

	// A merely requested booking already claims the dates.
	_, err := h.Handle(context.Background(), RequestBookingCommand{
		CommandID: "bk-second", PlaceID: "pl-1", GuestID: "gary",
		Start: day(12), End: day(18),
	})
	assert.ErrorIs(t, err, domainbooking.ErrPlaceUnavailable)
}

func TestRequestBookingBackToBackStays(t *testing.T) {
	e := newEnv(t)
	e.seedPlace(t, "pl-1", "olivia")
	e.seedWindow(t, "w1", "pl-1", 1, 30)
	e.seedBooking(t, "bk-first", "pl-1", "hana", domainbooking.StatusApproved, 10, 15)
	h := &RequestBookingHandler{UoWFactory: e.factory, Clock: e.clock}

	// Checkin on hana's checkout day is fine.
	res, err := h.Handle(context.Background(), RequestBookingCommand{
		CommandID: "bk-second", PlaceID: "pl-1", GuestID: "gary",
		Start: day(15), End: day(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "requested", res.Status)
}

func TestRequestBookingGuestDoubleBooked(t *testing.T) {
	e := newEnv(t)
	e.seedPlace(t, "pl-1", "olivia")
	e.seedPlace(t, "pl-2", "hana")
	e.seedWindow(t, "w1", "pl-1", 1, 30)
	e.seedWindow(t, "w2", "pl-2", 1, 30)
	e.seedBooking(t, "bk-other", "pl-2", "gary", domainbooking.StatusApproved, 10, 15)
	h := &RequestBookingHandler{UoWFactory: e.factory, Clock: e.clock}

	_, err := h.Handle(context.Background(), RequestBookingCommand{
		CommandID: "bk-1", PlaceID: "pl-1", GuestID: "gary",
		Start: day(12), End: day(18),
	})
	assert.ErrorIs(t, err, domainbooking.ErrGuestUnavailable)
}

func TestRequestBookingBumpsPlaceVersion(t *testing.T) {
	e := newEnv(t)
	p := e.seedPlace(t, "pl-1", "olivia")
	e.seedWindow(t, "w1", "pl-1", 1, 30)
	before := p.Version
	h := &RequestBookingHandler{UoWFactory: e.factory, Clock: e.clock}

	_, err := h.Handle(context.Background(), RequestBookingCommand{
		CommandID: "bk-1", PlaceID: "pl-1", GuestID: "gary",
		Start: day(10), End: day(15),
	})
	require.NoError(t, err)

	// Each booking write also writes the place, so concurrent requests for
	// the same place collide on its version instead of committing side by
	// side under snapshot isolation.
	stored, err := e.places.ByID(context.Background(), "pl-1")
	require.NoError(t, err)
	assert.Equal(t, before+1, stored.Version)
}

func TestRequestBookingInvalidRange(t *testing.T) {
	e := newEnv(t)
	e.seedPlace(t, "pl-1", "olivia")
	e.seedWindow(t, "w1", "pl-1", 1, 30)
	h := &RequestBookingHandler{UoWFactory: e.factory, Clock: e.clock}

	_, err := h.Handle(context.Background(), RequestBookingCommand{
		CommandID: "bk-1", PlaceID: "pl-1", GuestID: "gary",
		Start: day(15), End: day(15),
	})
	assert.ErrorIs(t, err, domainrange.ErrInvalidRange)

	// Failed requests leave no booking behind.
	_, err = e.bookings.ByID(context.Background(), "bk-1")
	assert.ErrorIs(t, err, domainbooking.ErrNotFound)
}
