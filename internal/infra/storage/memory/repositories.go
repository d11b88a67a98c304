package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	domainavailability "github.com/raburski/friends-place-sub000/internal/domain/availability"
	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

// ErrConcurrentUpdate mirrors the optimistic-concurrency failure of the
// mongo repositories so handlers behave identically against either store.
var ErrConcurrentUpdate = errors.New("memory: concurrent update detected")

// PlaceRepository is a mutex-guarded in-memory implementation.
type PlaceRepository struct {
	mu    sync.RWMutex
	items map[domainplace.PlaceID]domainplace.Place
}

func NewPlaceRepository() *PlaceRepository {
	return &PlaceRepository{items: make(map[domainplace.PlaceID]domainplace.Place)}
}

func (r *PlaceRepository) ByID(ctx context.Context, id domainplace.PlaceID) (*domainplace.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, domainplace.ErrNotFound
	}
	out := stored
	return &out, nil
}

func (r *PlaceRepository) Save(ctx context.Context, p *domainplace.Place) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[p.ID]; ok && existing.Version != p.Version {
		return ErrConcurrentUpdate
	}
	stored := *p
	stored.Version = p.Version + 1
	stored.ClearEvents()
	r.items[p.ID] = stored
	p.Version = stored.Version
	return nil
}

func (r *PlaceRepository) ListByOwner(ctx context.Context, owner domainplace.UserID) ([]*domainplace.Place, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainplace.Place
	for _, stored := range r.items {
		if stored.OwnerID == owner {
			p := stored
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// BookingRepository keeps bookings indexed by id; list scans are fine at the
// scale of a closed friends network.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]domainbooking.Booking
	order []domainbooking.BookingID
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	out := stored
	return &out, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[b.ID]
	if ok && existing.Version != b.Version {
		return ErrConcurrentUpdate
	}
	if !ok {
		r.order = append(r.order, b.ID)
	}
	stored := *b
	stored.Version = b.Version + 1
	stored.ClearEvents()
	r.items[b.ID] = stored
	b.Version = stored.Version
	return nil
}

func (r *BookingRepository) ListByPlace(ctx context.Context, id domainplace.PlaceID) ([]*domainbooking.Booking, error) {
	return r.list(func(b domainbooking.Booking) bool { return b.PlaceID == id })
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guest domainplace.UserID) ([]*domainbooking.Booking, error) {
	return r.list(func(b domainbooking.Booking) bool { return b.GuestID == guest })
}

func (r *BookingRepository) list(keep func(domainbooking.Booking) bool) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, id := range r.order {
		stored := r.items[id]
		if keep(stored) {
			b := stored
			out = append(out, &b)
		}
	}
	return out, nil
}

// AvailabilityRepository stores windows verbatim in insertion order.
type AvailabilityRepository struct {
	mu    sync.RWMutex
	items []domainavailability.Range
}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{}
}

func (r *AvailabilityRepository) ByID(ctx context.Context, id domainavailability.RangeID) (*domainavailability.Range, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, stored := range r.items {
		if stored.ID == id {
			out := stored
			return &out, nil
		}
	}
	return nil, domainavailability.ErrNotFound
}

func (r *AvailabilityRepository) ListByPlace(ctx context.Context, id domainplace.PlaceID) ([]*domainavailability.Range, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainavailability.Range
	for _, stored := range r.items {
		if stored.PlaceID == id {
			w := stored
			out = append(out, &w)
		}
	}
	return out, nil
}

func (r *AvailabilityRepository) Add(ctx context.Context, ranges []*domainavailability.Range) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, w := range ranges {
		r.items = append(r.items, *w)
	}
	return nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id domainavailability.RangeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, stored := range r.items {
		if stored.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domainavailability.ErrNotFound
}

// NotificationRepository is append-mostly; MarkRead is the only mutation.
type NotificationRepository struct {
	mu    sync.RWMutex
	items map[domainnotification.NotificationID]domainnotification.Notification
	order []domainnotification.NotificationID
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{items: make(map[domainnotification.NotificationID]domainnotification.Notification)}
}

func (r *NotificationRepository) ByID(ctx context.Context, id domainnotification.NotificationID) (*domainnotification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, domainnotification.ErrNotFound
	}
	out := stored
	return &out, nil
}

func (r *NotificationRepository) Save(ctx context.Context, n *domainnotification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[n.ID]; !ok {
		r.order = append(r.order, n.ID)
	}
	r.items[n.ID] = *n
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, user domainplace.UserID) ([]*domainnotification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainnotification.Notification
	for _, id := range r.order {
		stored := r.items[id]
		if stored.UserID == user {
			n := stored
			out = append(out, &n)
		}
	}
	return out, nil
}

var (
	_ domainplace.Repository        = (*PlaceRepository)(nil)
	_ domainbooking.Repository      = (*BookingRepository)(nil)
	_ domainavailability.Repository = (*AvailabilityRepository)(nil)
	_ domainnotification.Repository = (*NotificationRepository)(nil)
)
