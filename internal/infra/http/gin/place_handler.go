package ginserver

import (
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/dto"
	placeapp "github.com/raburski/friends-place-sub000/internal/app/handlers/place"
	"github.com/raburski/friends-place-sub000/internal/app/queries"
)

type PlaceHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type registerPlaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h PlaceHandler) Register(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var req registerPlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := placeapp.RegisterPlaceCommand{
		CommandID:   uuid.NewString(),
		OwnerID:     user,
		Name:        req.Name,
		Description: req.Description,
	}
	result, err := commands.Dispatch[placeapp.RegisterPlaceCommand, *placeapp.RegisterPlaceResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h PlaceHandler) Deactivate(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	cmd := placeapp.DeactivatePlaceCommand{
		PlaceID: strings.TrimSpace(c.Param("id")),
		OwnerID: user,
	}
	result, err := commands.Dispatch[placeapp.DeactivatePlaceCommand, *placeapp.DeactivatePlaceResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PlaceHandler) Get(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	q := placeapp.GetPlaceQuery{PlaceID: strings.TrimSpace(c.Param("id"))}
	result, err := queries.Ask[placeapp.GetPlaceQuery, dto.PlaceSummary](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PlaceHandler) ListMine(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	q := placeapp.ListOwnerPlacesQuery{OwnerID: user}
	result, err := queries.Ask[placeapp.ListOwnerPlacesQuery, dto.PlaceCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
