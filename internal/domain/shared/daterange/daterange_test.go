package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTruncatesToUTCDay(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	start := time.Date(2026, time.September, 1, 15, 30, 0, 0, loc)
	end := time.Date(2026, time.September, 5, 9, 0, 0, 0, loc)

	dr, err := New(start, end)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.September, 1), dr.Start)
	assert.Equal(t, day(2026, time.September, 5), dr.End)
	assert.Equal(t, 4, dr.Nights())
}

func TestNewRejectsEmptyOrInvertedRange(t *testing.T) {
	_, err := New(day(2026, time.September, 5), day(2026, time.September, 5))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(day(2026, time.September, 5), day(2026, time.September, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(time.Time{}, day(2026, time.September, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNewWindowAllowsSingleDay(t *testing.T) {
	dr, err := NewWindow(day(2026, time.September, 5), day(2026, time.September, 5))
	require.NoError(t, err)
	assert.Equal(t, dr.Start, dr.End)

	_, err = NewWindow(day(2026, time.September, 5), day(2026, time.September, 4))
	assert.ErrorIs(t, err, ErrInvalidDates)
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	first, err := New(day(2026, time.September, 1), day(2026, time.September, 5))
	require.NoError(t, err)
	second, err := New(day(2026, time.September, 5), day(2026, time.September, 10))
	require.NoError(t, err)

	// Checkout and checkin on the same day do not collide.
	assert.False(t, first.Overlaps(second))
	assert.False(t, second.Overlaps(first))

	third, err := New(day(2026, time.September, 4), day(2026, time.September, 6))
	require.NoError(t, err)
	assert.True(t, first.Overlaps(third))
	assert.True(t, third.Overlaps(first))
}

func TestCoversUsesInclusiveBoundaries(t *testing.T) {
	window, err := New(day(2026, time.September, 1), day(2026, time.September, 10))
	require.NoError(t, err)

	exact, err := New(day(2026, time.September, 1), day(2026, time.September, 10))
	require.NoError(t, err)
	assert.True(t, window.Covers(exact))

	inner, err := New(day(2026, time.September, 3), day(2026, time.September, 7))
	require.NoError(t, err)
	assert.True(t, window.Covers(inner))

	spill, err := New(day(2026, time.September, 8), day(2026, time.September, 12))
	require.NoError(t, err)
	assert.False(t, window.Covers(spill))
}

func TestContainsDate(t *testing.T) {
	dr, err := New(day(2026, time.September, 1), day(2026, time.September, 5))
	require.NoError(t, err)

	assert.True(t, dr.ContainsDate(day(2026, time.September, 1)))
	assert.True(t, dr.ContainsDate(day(2026, time.September, 4)))
	assert.False(t, dr.ContainsDate(day(2026, time.September, 5)))
}

func TestFilterOverlappingPreservesInputOrder(t *testing.T) {
	mk := func(s, e int) DateRange {
		dr, err := New(day(2026, time.September, s), day(2026, time.September, e))
		require.NoError(t, err)
		return dr
	}
	candidate := mk(5, 10)
	items := []DateRange{mk(1, 6), mk(10, 12), mk(9, 11), mk(2, 4)}

	hits := FilterOverlapping(candidate, items, func(dr DateRange) DateRange { return dr })
	require.Len(t, hits, 2)
	assert.Equal(t, items[0], hits[0])
	assert.Equal(t, items[2], hits[1])
}
