package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainavailability "github.com/raburski/friends-place-sub000/internal/domain/availability"
	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires in-memory repositories into a unit-of-work boundary. Write
// units hold a process-wide lock from Begin until Commit/Rollback, so the
// read-conflict-check-then-write sequences inside a command are serialized
// against other writers: two concurrent overlapping booking requests cannot
// both pass the overlap gate.
type Factory struct {
	PlacesRepo        domainplace.Repository
	BookingsRepo      domainbooking.Repository
	AvailabilityRepo  domainavailability.Repository
	NotificationsRepo domainnotification.Repository

	mu sync.Mutex
}

func (f *Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.PlacesRepo == nil || f.BookingsRepo == nil || f.AvailabilityRepo == nil || f.NotificationsRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	unit := &Unit{
		places:        f.PlacesRepo,
		bookings:      f.BookingsRepo,
		availability:  f.AvailabilityRepo,
		notifications: f.NotificationsRepo,
	}
	if !opts.ReadOnly {
		f.mu.Lock()
		unit.release = f.mu.Unlock
	}
	return unit, nil
}

type Unit struct {
	places        domainplace.Repository
	bookings      domainbooking.Repository
	availability  domainavailability.Repository
	notifications domainnotification.Repository

	release func()
	done    bool
}

func (u *Unit) Places() domainplace.Repository { return u.places }

func (u *Unit) Bookings() domainbooking.Repository { return u.bookings }

func (u *Unit) Availability() domainavailability.Repository { return u.availability }

func (u *Unit) Notifications() domainnotification.Repository { return u.notifications }

func (u *Unit) Commit(ctx context.Context) error {
	u.finish()
	return nil
}

// Rollback releases the write lock. Mutations already saved are not undone;
// handlers validate before saving, so a failed command has written nothing.
func (u *Unit) Rollback(ctx context.Context) error {
	u.finish()
	return nil
}

func (u *Unit) finish() {
	if u.done {
		return
	}
	u.done = true
	if u.release != nil {
		u.release()
	}
}

var _ uow.Factory = (*Factory)(nil)
