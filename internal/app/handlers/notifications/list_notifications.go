package notifications

import (
	"context"

	"github.com/raburski/friends-place-sub000/internal/app/dto"
	"github.com/raburski/friends-place-sub000/internal/app/handlers/support"
	"github.com/raburski/friends-place-sub000/internal/app/queries"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

const listNotificationsKey = "notifications.list"

type ListNotificationsQuery struct {
	UserID string
}

func (q ListNotificationsQuery) Key() string { return listNotificationsKey }

type ListNotificationsHandler struct {
	UoWFactory uow.Factory
}

func (h *ListNotificationsHandler) Handle(ctx context.Context, q ListNotificationsQuery) (dto.NotificationCollection, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.NotificationCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	items, err := unit.Notifications().ListByUser(execCtx, domainplace.UserID(q.UserID))
	if err != nil {
		return dto.NotificationCollection{}, err
	}
	out := make([]dto.NotificationSummary, 0, len(items))
	for _, n := range items {
		out = append(out, dto.MapNotificationSummary(n))
	}
	return dto.NotificationCollection{Items: out}, nil
}

var _ queries.Handler[ListNotificationsQuery, dto.NotificationCollection] = (*ListNotificationsHandler)(nil)
