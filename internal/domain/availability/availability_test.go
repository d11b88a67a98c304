package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raburski/friends-place-sub000/internal/domain/booking"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/daterange"
)

func day(d int) time.Time {
	return time.Date(2026, time.September, d, 0, 0, 0, 0, time.UTC)
}

func window(t *testing.T, id string, startDay, endDay int) *Range {
	t.Helper()
	dr, err := daterange.NewWindow(day(startDay), day(endDay))
	require.NoError(t, err)
	return &Range{ID: RangeID(id), PlaceID: "pl-1", Range: dr}
}

func stay(t *testing.T, startDay, endDay int) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(day(startDay), day(endDay))
	require.NoError(t, err)
	return dr
}

func TestCoversRequiresASingleWindow(t *testing.T) {
	windows := []*Range{
		window(t, "w1", 1, 10),
		window(t, "w2", 10, 20),
	}

	assert.True(t, Covers(stay(t, 2, 8), windows))
	assert.True(t, Covers(stay(t, 1, 10), windows))
	// Adjoining windows do not combine into one: 5..15 spans both.
	assert.False(t, Covers(stay(t, 5, 15), windows))
	assert.False(t, Covers(stay(t, 21, 25), windows))
}

func TestCoversWithNoWindows(t *testing.T) {
	assert.False(t, Covers(stay(t, 1, 2), nil))
}

func TestConflictingBookingsDedupesAcrossWindows(t *testing.T) {
	live := &booking.Booking{ID: "bk-1", GuestID: "gary", Range: stay(t, 5, 15), Status: booking.StatusApproved}
	pending := &booking.Booking{ID: "bk-2", GuestID: "hana", Range: stay(t, 18, 22), Status: booking.StatusRequested}
	done := &booking.Booking{ID: "bk-3", GuestID: "ivan", Range: stay(t, 5, 15), Status: booking.StatusCompleted}

	added := []*Range{
		window(t, "w1", 1, 10),
		window(t, "w2", 10, 20),
	}

	// bk-1 overlaps both new windows but is reported once; bk-3 is terminal.
	hits := ConflictingBookings(added, []*booking.Booking{live, pending, done})
	require.Len(t, hits, 2)
	assert.Equal(t, booking.BookingID("bk-1"), hits[0].ID)
	assert.Equal(t, booking.BookingID("bk-2"), hits[1].ID)
}
