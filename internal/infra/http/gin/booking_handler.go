package ginserver

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/dto"
	bookingapp "github.com/raburski/friends-place-sub000/internal/app/handlers/booking"
	"github.com/raburski/friends-place-sub000/internal/app/queries"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type requestBookingRequest struct {
	PlaceID string    `json:"place_id" binding:"required"`
	Start   time.Time `json:"start_date" binding:"required"`
	End     time.Time `json:"end_date" binding:"required"`
}

func (h BookingHandler) Request(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req requestBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.RequestBookingCommand{
		CommandID:       uuid.NewString(),
		PlaceID:         req.PlaceID,
		GuestID:         user,
		Start:           req.Start,
		End:             req.End,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.RequestBookingCommand, *bookingapp.RequestBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h BookingHandler) Approve(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	cmd := bookingapp.ApproveBookingCommand{
		BookingID: strings.TrimSpace(c.Param("id")),
		OwnerID:   user,
	}
	result, err := commands.Dispatch[bookingapp.ApproveBookingCommand, *bookingapp.DecisionResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Decline(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	cmd := bookingapp.DeclineBookingCommand{
		BookingID: strings.TrimSpace(c.Param("id")),
		OwnerID:   user,
	}
	result, err := commands.Dispatch[bookingapp.DeclineBookingCommand, *bookingapp.DecisionResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Cancel(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	cmd := bookingapp.CancelBookingCommand{
		BookingID: strings.TrimSpace(c.Param("id")),
		ActorID:   user,
	}
	result, err := commands.Dispatch[bookingapp.CancelBookingCommand, *bookingapp.DecisionResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Complete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	cmd := bookingapp.CompleteBookingCommand{
		BookingID: strings.TrimSpace(c.Param("id")),
		OwnerID:   user,
	}
	result, err := commands.Dispatch[bookingapp.CompleteBookingCommand, *bookingapp.DecisionResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) ListMine(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	q := bookingapp.ListGuestBookingsQuery{GuestID: user, Status: c.Query("status")}
	result, err := queries.Ask[bookingapp.ListGuestBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) ListForPlace(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	q := bookingapp.ListPlaceBookingsQuery{
		PlaceID: strings.TrimSpace(c.Param("id")),
		OwnerID: user,
		Status:  c.Query("status"),
	}
	result, err := queries.Ask[bookingapp.ListPlaceBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
