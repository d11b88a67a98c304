package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainavailability "github.com/raburski/friends-place-sub000/internal/domain/availability"
	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Factory wires Mongo transactions into the generic UnitOfWork interface.
// Transactions are snapshot-isolated and only conflict on writes to the same
// document, so the booking gates alone are not safe against racing writers
// touching distinct bookings. Every booking-mutating unit therefore also
// saves the place aggregate: its version filter turns two racing units into
// one winner and one ErrConcurrentUpdate abort.
type Factory struct {
	DB *mongo.Database

	PlacesRepo        domainplace.Repository
	BookingsRepo      domainbooking.Repository
	AvailabilityRepo  domainavailability.Repository
	NotificationsRepo domainnotification.Repository
}

func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		session:       session,
		places:        f.PlacesRepo,
		bookings:      f.BookingsRepo,
		availability:  f.AvailabilityRepo,
		notifications: f.NotificationsRepo,
	}, nil
}

type Unit struct {
	session mongo.Session

	places        domainplace.Repository
	bookings      domainbooking.Repository
	availability  domainavailability.Repository
	notifications domainnotification.Repository
}

func (u *Unit) Places() domainplace.Repository { return u.places }

func (u *Unit) Bookings() domainbooking.Repository { return u.bookings }

func (u *Unit) Availability() domainavailability.Repository { return u.availability }

func (u *Unit) Notifications() domainnotification.Repository { return u.notifications }

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext makes the Mongo session available to downstream repos.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}

var _ uow.Factory = Factory{}
