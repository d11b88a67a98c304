package availability

import (
	"context"
	"errors"
	"time"

	"github.com/raburski/friends-place-sub000/internal/domain/booking"
	"github.com/raburski/friends-place-sub000/internal/domain/place"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/daterange"
)

var (
	ErrNotFound       = errors.New("availability: range not found")
	ErrNoAvailability = errors.New("availability: no window covers the requested range")
	ErrNoValidRanges  = errors.New("availability: no valid ranges provided")
)

// Range is an owner-declared window during which a place may be requested.
// Windows are stored verbatim: overlapping or redundant windows are accepted,
// never merged or deduplicated.
type Range struct {
	ID        RangeID
	PlaceID   place.PlaceID
	Range     daterange.DateRange
	CreatedAt time.Time
}

type RangeID string

type Repository interface {
	ByID(ctx context.Context, id RangeID) (*Range, error)
	ListByPlace(ctx context.Context, id place.PlaceID) ([]*Range, error)
	Add(ctx context.Context, ranges []*Range) error
	Delete(ctx context.Context, id RangeID) error
}

// Covers reports whether any single window fully contains candidate under
// inclusive boundary semantics. Coverage across two adjoining windows does
// not count; a booking must fit inside one window.
func Covers(candidate daterange.DateRange, windows []*Range) bool {
	return daterange.AnyCovers(candidate, windows, func(r *Range) daterange.DateRange { return r.Range })
}

// ConflictingBookings returns every live booking that overlaps at least one
// of the newly added windows, in input order and without duplicates. These
// conflicts are advisory: the bookings stay untouched and their guests are
// notified.
func ConflictingBookings(added []*Range, existing []*booking.Booking) []*booking.Booking {
	var out []*booking.Booking
	seen := make(map[booking.BookingID]struct{}, len(existing))
	for _, b := range existing {
		if !b.Status.Live() {
			continue
		}
		for _, w := range added {
			if w.Range.Overlaps(b.Range) {
				if _, dup := seen[b.ID]; !dup {
					seen[b.ID] = struct{}{}
					out = append(out, b)
				}
				break
			}
		}
	}
	return out
}
