package place

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/raburski/friends-place-sub000/internal/domain/shared/events"
)

var (
	ErrNotFound        = errors.New("place: not found")
	ErrNotOwner        = errors.New("place: actor is not the owner")
	ErrNameRequired    = errors.New("place: name is required")
	ErrOwnerRequired   = errors.New("place: owner id is required")
	ErrAlreadyInactive = errors.New("place: already deactivated")
	ErrInactive        = errors.New("place: not active")
	ErrCannotBookOwn   = errors.New("place: owner cannot book their own place")
)

type PlaceID string
type UserID string

// Place is a bookable home owned by a single user. IsActive=false is a
// terminal lifecycle state; deactivation cascades to future bookings at the
// application layer.
type Place struct {
	ID          PlaceID
	OwnerID     UserID
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id PlaceID) (*Place, error)
	Save(ctx context.Context, p *Place) error
	ListByOwner(ctx context.Context, owner UserID) ([]*Place, error)
}

type CreateParams struct {
	ID          PlaceID
	OwnerID     UserID
	Name        string
	Description string
	Now         time.Time
}

func New(params CreateParams) (*Place, error) {
	if strings.TrimSpace(string(params.OwnerID)) == "" {
		return nil, ErrOwnerRequired
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	now := params.Now.UTC()
	p := &Place{
		ID:          params.ID,
		OwnerID:     params.OwnerID,
		Name:        strings.TrimSpace(params.Name),
		Description: strings.TrimSpace(params.Description),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.Record(Registered{PlaceID: string(p.ID), OwnerID: string(p.OwnerID), At: now})
	return p, nil
}

// OwnedBy guards owner-only operations.
func (p *Place) OwnedBy(user UserID) error {
	if p.OwnerID != user {
		return ErrNotOwner
	}
	return nil
}

// Deactivate flips the place into its terminal inactive state.
func (p *Place) Deactivate(now time.Time) error {
	if !p.IsActive {
		return ErrAlreadyInactive
	}
	p.IsActive = false
	p.UpdatedAt = now.UTC()
	p.Record(Deactivated{PlaceID: string(p.ID), OwnerID: string(p.OwnerID), At: p.UpdatedAt})
	return nil
}
