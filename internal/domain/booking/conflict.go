package booking

import (
	"github.com/raburski/friends-place-sub000/internal/domain/shared/daterange"
)

// Conflict resolution is kept as pure functions over booking slices so both
// the request path and the approval path share one overlap definition.

func rangeOf(b *Booking) daterange.DateRange { return b.Range }

// LiveConflicts returns every live (requested or approved) booking whose
// range overlaps candidate, in input order. Used as the request-time gate:
// even a merely requested booking blocks a second request for the same dates.
func LiveConflicts(candidate daterange.DateRange, existing []*Booking) []*Booking {
	live := make([]*Booking, 0, len(existing))
	for _, b := range existing {
		if b.Status.Live() {
			live = append(live, b)
		}
	}
	return daterange.FilterOverlapping(candidate, live, rangeOf)
}

// ApprovedConflicts returns overlapping approved bookings, skipping the
// booking identified by exclude. Used as the approval-time gate on the place:
// other pending requests do not block an approval, only approved stays do.
func ApprovedConflicts(candidate daterange.DateRange, existing []*Booking, exclude BookingID) []*Booking {
	approved := make([]*Booking, 0, len(existing))
	for _, b := range existing {
		if b.ID == exclude {
			continue
		}
		if b.Status == StatusApproved {
			approved = append(approved, b)
		}
	}
	return daterange.FilterOverlapping(candidate, approved, rangeOf)
}

// GuestConflicts returns the guest's own overlapping live bookings across all
// places, skipping exclude. A guest cannot hold two live claims for the same
// dates anywhere.
func GuestConflicts(candidate daterange.DateRange, ownBookings []*Booking, exclude BookingID) []*Booking {
	live := make([]*Booking, 0, len(ownBookings))
	for _, b := range ownBookings {
		if b.ID == exclude {
			continue
		}
		if b.Status.Live() {
			live = append(live, b)
		}
	}
	return daterange.FilterOverlapping(candidate, live, rangeOf)
}
