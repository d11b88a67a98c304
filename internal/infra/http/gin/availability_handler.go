package ginserver

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	availabilityapp "github.com/raburski/friends-place-sub000/internal/app/handlers/availability"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/dto"
	"github.com/raburski/friends-place-sub000/internal/app/queries"
)

type AvailabilityHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type availabilityRangeRequest struct {
	Start time.Time `json:"start_date" binding:"required"`
	End   time.Time `json:"end_date" binding:"required"`
}

type addAvailabilityRequest struct {
	Ranges []availabilityRangeRequest `json:"ranges" binding:"required,min=1"`
}

func (h AvailabilityHandler) Add(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req addAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := availabilityapp.AddAvailabilityCommand{
		PlaceID: strings.TrimSpace(c.Param("id")),
		OwnerID: user,
		Ranges:  make([]availabilityapp.RangeInput, 0, len(req.Ranges)),
	}
	for _, r := range req.Ranges {
		cmd.Ranges = append(cmd.Ranges, availabilityapp.RangeInput{Start: r.Start, End: r.End})
	}
	result, err := commands.Dispatch[availabilityapp.AddAvailabilityCommand, *availabilityapp.AddAvailabilityResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h AvailabilityHandler) Remove(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	cmd := availabilityapp.RemoveAvailabilityCommand{
		RangeID: strings.TrimSpace(c.Param("rangeId")),
		OwnerID: user,
	}
	result, err := commands.Dispatch[availabilityapp.RemoveAvailabilityCommand, *availabilityapp.RemoveAvailabilityResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) Calendar(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	q := availabilityapp.GetCalendarQuery{PlaceID: strings.TrimSpace(c.Param("id"))}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.AvailabilityCalendar](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
