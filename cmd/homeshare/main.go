package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	availabilityapp "github.com/raburski/friends-place-sub000/internal/app/handlers/availability"
	bookingapp "github.com/raburski/friends-place-sub000/internal/app/handlers/booking"
	notificationsapp "github.com/raburski/friends-place-sub000/internal/app/handlers/notifications"
	placeapp "github.com/raburski/friends-place-sub000/internal/app/handlers/place"
	"github.com/raburski/friends-place-sub000/internal/app/middleware"
	"github.com/raburski/friends-place-sub000/internal/app/queries"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/clock"
	"github.com/raburski/friends-place-sub000/internal/infra/broker/kafka"
	"github.com/raburski/friends-place-sub000/internal/infra/config"
	mongostore "github.com/raburski/friends-place-sub000/internal/infra/db/mongo"
	ginserver "github.com/raburski/friends-place-sub000/internal/infra/http/gin"
	"github.com/raburski/friends-place-sub000/internal/infra/notify"
	"github.com/raburski/friends-place-sub000/internal/infra/obs"
	"github.com/raburski/friends-place-sub000/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, cleanup, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	ready    func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var (
		uowFactory uow.Factory
		sink       *notify.Dispatcher
		ready      = func() error { return nil }
	)
	sysClock := clock.System{}

	switch cfg.StoreMode {
	case "mongo":
		client, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, cleanup, err
		}
		cleanups = append(cleanups, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := client.Close(closeCtx); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		})
		if err := client.Ping(ctx); err != nil {
			return application{}, cleanup, err
		}
		notificationsRepo := mongostore.NewNotificationRepository(client.DB)
		uowFactory = mongostore.Factory{
			DB:                client.DB,
			PlacesRepo:        mongostore.NewPlaceRepository(client.DB),
			BookingsRepo:      mongostore.NewBookingRepository(client.DB),
			AvailabilityRepo:  mongostore.NewAvailabilityRepository(client.DB),
			NotificationsRepo: notificationsRepo,
		}
		sink = &notify.Dispatcher{Store: notificationsRepo, Logger: logger, Clock: sysClock, TopicPrefix: cfg.KafkaTopicPrefix}
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return client.Ping(pingCtx)
		}
	default:
		notificationsRepo := memory.NewNotificationRepository()
		uowFactory = &memory.Factory{
			PlacesRepo:        memory.NewPlaceRepository(),
			BookingsRepo:      memory.NewBookingRepository(),
			AvailabilityRepo:  memory.NewAvailabilityRepository(),
			NotificationsRepo: notificationsRepo,
		}
		sink = &notify.Dispatcher{Store: notificationsRepo, Logger: logger, Clock: sysClock, TopicPrefix: cfg.KafkaTopicPrefix}
	}

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, cleanup, err
		}
		cleanups = append(cleanups, func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka producer close failed", "error", err)
			}
		})
		sink.Producer = producer
	}

	commandBus := commands.NewInMemoryBus()
	registerCommandHandlers(commandBus, uowFactory, sysClock)

	queryBus := queries.NewInMemoryBus()
	registerQueryHandlers(queryBus, uowFactory)

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(memory.NewIdempotencyStore(), memory.ErrConcurrentUpdate, mongostore.ErrConcurrentUpdate),
		middleware.Notifications(sink, logger),
		middleware.Transaction(uowFactory, nil),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	return application{
		handlers: ginserver.Handlers{
			Place: ginserver.PlaceHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
				Logger:   logger,
			},
			Booking: ginserver.BookingHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
				Logger:   logger,
			},
			Availability: ginserver.AvailabilityHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
				Logger:   logger,
			},
			Notification: ginserver.NotificationHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
				Logger:   logger,
			},
		},
		ready: ready,
	}, cleanup, nil
}

func registerCommandHandlers(bus *commands.InMemoryBus, factory uow.Factory, c clock.Clock) {
	commands.RegisterHandler(bus, placeapp.RegisterPlaceCommand{}.Key(), &placeapp.RegisterPlaceHandler{UoWFactory: factory, Clock: c})
	commands.RegisterHandler(bus, placeapp.DeactivatePlaceCommand{}.Key(), &placeapp.DeactivatePlaceHandler{UoWFactory: factory, Clock: c})
	commands.RegisterHandler(bus, bookingapp.RequestBookingCommand{}.Key(), &bookingapp.RequestBookingHandler{UoWFactory: factory, Clock: c})
	commands.RegisterHandler(bus, bookingapp.ApproveBookingCommand{}.Key(), &bookingapp.ApproveBookingHandler{UoWFactory: factory, Clock: c})
	commands.RegisterHandler(bus, bookingapp.DeclineBookingCommand{}.Key(), &bookingapp.DeclineBookingHandler{UoWFactory: factory, Clock: c})
	commands.RegisterHandler(bus, bookingapp.CancelBookingCommand{}.Key(), &bookingapp.CancelBookingHandler{UoWFactory: factory, Clock: c})
	commands.RegisterHandler(bus, bookingapp.CompleteBookingCommand{}.Key(), &bookingapp.CompleteBookingHandler{UoWFactory: factory, Clock: c})
	commands.RegisterHandler(bus, availabilityapp.AddAvailabilityCommand{}.Key(), &availabilityapp.AddAvailabilityHandler{UoWFactory: factory, Clock: c})
	commands.RegisterHandler(bus, availabilityapp.RemoveAvailabilityCommand{}.Key(), &availabilityapp.RemoveAvailabilityHandler{UoWFactory: factory})
	commands.RegisterHandler(bus, notificationsapp.MarkReadCommand{}.Key(), &notificationsapp.MarkReadHandler{UoWFactory: factory, Clock: c})
}

func registerQueryHandlers(bus *queries.InMemoryBus, factory uow.Factory) {
	queries.RegisterHandler(bus, placeapp.GetPlaceQuery{}.Key(), &placeapp.GetPlaceHandler{UoWFactory: factory})
	queries.RegisterHandler(bus, placeapp.ListOwnerPlacesQuery{}.Key(), &placeapp.ListOwnerPlacesHandler{UoWFactory: factory})
	queries.RegisterHandler(bus, bookingapp.ListGuestBookingsQuery{}.Key(), &bookingapp.ListGuestBookingsHandler{UoWFactory: factory})
	queries.RegisterHandler(bus, bookingapp.ListPlaceBookingsQuery{}.Key(), &bookingapp.ListPlaceBookingsHandler{UoWFactory: factory})
	queries.RegisterHandler(bus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{UoWFactory: factory})
	queries.RegisterHandler(bus, notificationsapp.ListNotificationsQuery{}.Key(), &notificationsapp.ListNotificationsHandler{UoWFactory: factory})
}
