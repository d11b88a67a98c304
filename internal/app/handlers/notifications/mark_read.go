package notifications

import (
	"context"
	"time"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/handlers/support"
	"github.com/raburski/friends-place-sub000/internal/app/uow"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/clock"
)

const markReadKey = "notifications.mark_read"

type MarkReadCommand struct {
	NotificationID string
	UserID         string
}

func (c MarkReadCommand) Key() string { return markReadKey }

type MarkReadResult struct {
	NotificationID string `json:"notification_id"`
}

type MarkReadHandler struct {
	UoWFactory uow.Factory
	Clock      clock.Clock
}

func (h *MarkReadHandler) Handle(ctx context.Context, cmd MarkReadCommand) (*MarkReadResult, error) {
	var result *MarkReadResult
	err := support.RunInUnit(ctx, h.UoWFactory, func(ctx context.Context, unit uow.UnitOfWork) error {
		n, err := unit.Notifications().ByID(ctx, domainnotification.NotificationID(cmd.NotificationID))
		if err != nil {
			return err
		}
		if n.UserID != domainplace.UserID(cmd.UserID) {
			return domainnotification.ErrNotRecipient
		}
		nowAt := time.Now().UTC()
		if h.Clock != nil {
			nowAt = h.Clock.Now()
		}
		n.MarkRead(nowAt)
		if err := unit.Notifications().Save(ctx, n); err != nil {
			return err
		}
		result = &MarkReadResult{NotificationID: string(n.ID)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

var _ commands.Handler[MarkReadCommand, *MarkReadResult] = (*MarkReadHandler)(nil)
