package ginserver

import (
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/dto"
	notificationsapp "github.com/raburski/friends-place-sub000/internal/app/handlers/notifications"
	"github.com/raburski/friends-place-sub000/internal/app/queries"
)

type NotificationHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

func (h NotificationHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	q := notificationsapp.ListNotificationsQuery{UserID: user}
	result, err := queries.Ask[notificationsapp.ListNotificationsQuery, dto.NotificationCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h NotificationHandler) MarkRead(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	cmd := notificationsapp.MarkReadCommand{
		NotificationID: strings.TrimSpace(c.Param("id")),
		UserID:         user,
	}
	result, err := commands.Dispatch[notificationsapp.MarkReadCommand, *notificationsapp.MarkReadResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
