package dto

import (
	"time"

	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

type BookingSummary struct {
	ID        string    `json:"id"`
	PlaceID   string    `json:"place_id"`
	PlaceName string    `json:"place_name,omitempty"`
	GuestID   string    `json:"guest_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type BookingCollection struct {
	Items []BookingSummary `json:"items"`
}

func MapBookingSummary(b *domainbooking.Booking, p *domainplace.Place) BookingSummary {
	out := BookingSummary{
		ID:        string(b.ID),
		PlaceID:   string(b.PlaceID),
		GuestID:   string(b.GuestID),
		StartDate: b.Range.Start.Format("2006-01-02"),
		EndDate:   b.Range.End.Format("2006-01-02"),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
	if p != nil {
		out.PlaceName = p.Name
	}
	return out
}
