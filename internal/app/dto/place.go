package dto

import (
	"time"

	domainavailability "github.com/raburski/friends-place-sub000/internal/domain/availability"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

type PlaceSummary struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type PlaceCollection struct {
	Items []PlaceSummary `json:"items"`
}

func MapPlaceSummary(p *domainplace.Place) PlaceSummary {
	return PlaceSummary{
		ID:          string(p.ID),
		OwnerID:     string(p.OwnerID),
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

type AvailabilityRange struct {
	ID        string `json:"id"`
	PlaceID   string `json:"place_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type AvailabilityCalendar struct {
	PlaceID string              `json:"place_id"`
	Ranges  []AvailabilityRange `json:"ranges"`
}

func MapAvailabilityRange(r *domainavailability.Range) AvailabilityRange {
	return AvailabilityRange{
		ID:        string(r.ID),
		PlaceID:   string(r.PlaceID),
		StartDate: r.Range.Start.Format("2006-01-02"),
		EndDate:   r.Range.End.Format("2006-01-02"),
	}
}

type NotificationSummary struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Payload   map[string]string `json:"payload"`
	ReadAt    *time.Time        `json:"read_at,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type NotificationCollection struct {
	Items []NotificationSummary `json:"items"`
}

func MapNotificationSummary(n *domainnotification.Notification) NotificationSummary {
	return NotificationSummary{
		ID:        string(n.ID),
		Type:      string(n.Type),
		Payload:   n.Payload,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
