package uow

import (
	"context"

	domainavailability "github.com/raburski/friends-place-sub000/internal/domain/availability"
	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

// UnitOfWork coordinates repositories inside a transaction boundary. The
// read-check-write sequences in booking and deactivation handlers rely on a
// unit being atomic with respect to other conflicting writers.
type UnitOfWork interface {
	Places() domainplace.Repository
	Bookings() domainbooking.Repository
	Availability() domainavailability.Repository
	Notifications() domainnotification.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Factory starts unit of work instances.
type Factory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
