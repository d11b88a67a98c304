package availability

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
	places       *memory.PlaceRepository
	bookings     *memory.BookingRepository
	availability *memory.AvailabilityRepository
	factory      *memory.Factory
	clock        clock.Fixed
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		places:       memory.NewPlaceRepository(),
		bookings:     memory.NewBookingRepository(),
		availability: memory.NewAvailabilityRepository(),
		clock:        clock.Fixed{At: time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)},
	}
	e.factory = &memory.Factory{
		PlacesRepo:        e.places,
		BookingsRepo:      e.bookings,
		AvailabilityRepo:  e.availability,
		NotificationsRepo: memory.NewNotificationRepository(),
	}
	p, err := domainplace.New(domainplace.CreateParams{
		ID: "pl-1", OwnerID: "olivia", Name: "Lake cabin", Now: e.clock.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, e.places.Save(context.Background(), p))
	return e
}

func (e *env) seedBooking(t *testing.T, id, guest string, status domainbooking.Status, startDay, endDay int) {
	t.Helper()
	dr, err := domainrange.New(day(startDay), day(endDay))
	require.NoError(t, err)
	b, err := domainbooking.New(domainbooking.CreateParams{
		ID: domainbooking.BookingID(id), PlaceID: "pl-1",
		GuestID: domainplace.UserID(guest), Range: dr, Now: e.clock.Now(),
	})
	require.NoError(t, err)
	b.Status = status
	require.NoError(t, e.bookings.Save(context.Background(), b))
}

func TestAddAvailabilityStoresWindowsVerbatim(t *testing.T) {
	e := newEnv(t)
	h := &AddAvailabilityHandler{UoWFactory: e.factory, Clock: e.clock}

	res, err := h.Handle(context.Background(), AddAvailabilityCommand{
		PlaceID: "pl-1", OwnerID: "olivia",
		Ranges: []RangeInput{
			{Start: day(1), End: day(10)},
			{Start: day(1), End: day(10)}, // duplicate, kept as-is
			{Start: day(5), End: day(15)},
		},
	})
	require.NoError(t, err)
	assert.Len(t, res.RangeIDs, 3)

	windows, err := e.availability.ListByPlace(context.Background(), "pl-1")
	require.NoError(t, err)
	assert.Len(t, windows, 3)
}

func TestAddAvailabilitySkipsInvalidWindows(t *testing.T) {
	e := newEnv(t)
	h := &AddAvailabilityHandler{UoWFactory: e.factory, Clock: e.clock}

	res, err := h.Handle(context.Background(), AddAvailabilityCommand{
		PlaceID: "pl-1", OwnerID: "olivia",
		Ranges: []RangeInput{
			{Start: day(10), End: day(5)},
			{End: day(5)},
			{Start: day(1), End: day(10)},
		},
	})
	require.NoError(t, err)
	assert.Len(t, res.RangeIDs, 1)
}

func TestAddAvailabilityRejectsWhenNothingValid(t *testing.T) {
	e := newEnv(t)
	h := &AddAvailabilityHandler{UoWFactory: e.factory, Clock: e.clock}

	_, err := h.Handle(context.Background(), AddAvailabilityCommand{
		PlaceID: "pl-1", OwnerID: "olivia",
		Ranges:  []RangeInput{{Start: day(10), End: day(5)}},
	})
	assert.ErrorIs(t, err, domainavailability.ErrNoValidRanges)
}

func TestAddAvailabilityRequiresOwner(t *testing.T) {
	e := newEnv(t)
	h := &AddAvailabilityHandler{UoWFactory: e.factory, Clock: e.clock}

	_, err := h.Handle(context.Background(), AddAvailabilityCommand{
		PlaceID: "pl-1", OwnerID: "gary",
		Ranges:  []RangeInput{{Start: day(1), End: day(10)}},
	})
	assert.ErrorIs(t, err, domainplace.ErrNotOwner)
}

func TestAddAvailabilityNotifiesOverlappingGuests(t *testing.T) {
	e := newEnv(t)
	e.seedBooking(t, "bk-1", "gary", domainbooking.StatusApproved, 5, 12)
	e.seedBooking(t, "bk-2", "hana", domainbooking.StatusCompleted, 5, 12)
	h := &AddAvailabilityHandler{UoWFactory: e.factory, Clock: e.clock}

	ctx, buf := notify.WithBuffer(context.Background())
	_, err := h.Handle(ctx, AddAvailabilityCommand{
		PlaceID: "pl-1", OwnerID: "olivia",
		Ranges:  []RangeInput{{Start: day(1), End: day(10)}},
	})
	require.NoError(t, err)

	msgs := buf.Drain()
	require.Len(t, msgs, 1)
	assert.Equal(t, domainplace.UserID("gary"), msgs[0].UserID)
	assert.Equal(t, domainnotification.TypeAvailabilityConflict, msgs[0].Type)
	assert.Equal(t, "bk-1", msgs[0].Payload["bookingId"])

	// Advisory only: the booking keeps its status.
	stored, err := e.bookings.ByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusApproved, stored.Status)
}

func TestRemoveAvailabilityLeavesBookingsAlone(t *testing.T) {
	e := newEnv(t)
	dr, err := domainrange.NewWindow(day(1), day(30))
	require.NoError(t, err)
	require.NoError(t, e.availability.Add(context.Background(), []*domainavailability.Range{{
		ID: "w1", PlaceID: "pl-1", Range: dr, CreatedAt: e.clock.Now(),
	}}))
	e.seedBooking(t, "bk-1", "gary", domainbooking.StatusApproved, 5, 12)

	h := &RemoveAvailabilityHandler{UoWFactory: e.factory}
	ctx, buf := notify.WithBuffer(context.Background())
	res, err := h.Handle(ctx, RemoveAvailabilityCommand{RangeID: "w1", OwnerID: "olivia"})
	require.NoError(t, err)
	assert.Equal(t, "w1", res.RangeID)

	// No re-check on removal: nothing staged, booking untouched.
	assert.Empty(t, buf.Drain())
	stored, err := e.bookings.ByID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, domainbooking.StatusApproved, stored.Status)

	_, err = e.availability.ByID(context.Background(), "w1")
	assert.ErrorIs(t, err, domainavailability.ErrNotFound)
}

func TestRemoveAvailabilityRequiresOwner(t *testing.T) {
	e := newEnv(t)
	dr, err := domainrange.NewWindow(day(1), day(30))
	require.NoError(t, err)
	require.NoError(t, e.availability.Add(context.Background(), []*domainavailability.Range{{
		ID: "w1", PlaceID: "pl-1", Range: dr, CreatedAt: e.clock.Now(),
	}}))

	h := &RemoveAvailabilityHandler{UoWFactory: e.factory}
	_, err = h.Handle(context.Background(), RemoveAvailabilityCommand{RangeID: "w1", OwnerID: "gary"})
	assert.ErrorIs(t, err, domainplace.ErrNotOwner)
}
