package place

import "time"

type Registered struct {
	PlaceID string
	OwnerID string
	At      time.Time
}

func (e Registered) EventName() string     { return "place.registered" }
func (e Registered) AggregateID() string   { return e.PlaceID }
func (e Registered) OccurredAt() time.Time { return e.At }

type Deactivated struct {
	PlaceID string
	OwnerID string
	At      time.Time
}

func (e Deactivated) EventName() string     { return "place.deactivated" }
func (e Deactivated) AggregateID() string   { return e.PlaceID }
func (e Deactivated) OccurredAt() time.Time { return e.At }
