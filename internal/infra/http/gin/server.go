package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"github.com/raburski/friends-place-sub000/internal/infra/config"
	"github.com/raburski/friends-place-sub000/internal/infra/obs"
)

type PlaceHTTP interface {
	Register(c *gin.Context)
	Deactivate(c *gin.Context)
	Get(c *gin.Context)
	ListMine(c *gin.Context)
}

type BookingHTTP interface {
	Request(c *gin.Context)
	Approve(c *gin.Context)
	Decline(c *gin.Context)
	Cancel(c *gin.Context)
	Complete(c *gin.Context)
	ListMine(c *gin.Context)
	ListForPlace(c *gin.Context)
}

type AvailabilityHTTP interface {
	Add(c *gin.Context)
	Remove(c *gin.Context)
	Calendar(c *gin.Context)
}

type NotificationHTTP interface {
	List(c *gin.Context)
	MarkRead(c *gin.Context)
}

type Handlers struct {
	Place        PlaceHTTP
	Booking      BookingHTTP
	Availability AvailabilityHTTP
	Notification NotificationHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", IdentityHeader, "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	router.Use(Identity())

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Place != nil {
		api.POST("/places", h.Place.Register)
		api.GET("/places/:id", h.Place.Get)
		api.POST("/places/:id/deactivate", h.Place.Deactivate)
		api.GET("/me/places", h.Place.ListMine)
	}
	if h.Availability != nil {
		api.GET("/places/:id/calendar", h.Availability.Calendar)
		api.POST("/places/:id/availability", h.Availability.Add)
		api.DELETE("/places/:id/availability/:rangeId", h.Availability.Remove)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Request)
		api.POST("/bookings/:id/approve", h.Booking.Approve)
		api.POST("/bookings/:id/decline", h.Booking.Decline)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
		api.POST("/bookings/:id/complete", h.Booking.Complete)
		api.GET("/me/bookings", h.Booking.ListMine)
		api.GET("/places/:id/bookings", h.Booking.ListForPlace)
	}
	if h.Notification != nil {
		api.GET("/me/notifications", h.Notification.List)
		api.POST("/notifications/:id/read", h.Notification.MarkRead)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
