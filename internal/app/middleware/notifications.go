package middleware

import (
	"context"
	"log/slog"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/notify"
)

// Notifications attaches a staging buffer to each command and flushes it to
// the sink after the inner pipeline (including the transaction) succeeds.
// Sink errors are logged and swallowed; delivery is best-effort.
func Notifications(sink notify.Sink, logger *slog.Logger) CommandMiddleware {
	if sink == nil {
		panic("middleware: notification sink required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			execCtx, buf := notify.WithBuffer(ctx)
			res, err := nextFn(execCtx, cmd)
			if err != nil {
				return nil, err
			}
			for _, msg := range buf.Drain() {
				if sendErr := sink.Notify(ctx, msg); sendErr != nil && logger != nil {
					logger.Error("notification delivery failed",
						"user_id", msg.UserID, "type", msg.Type, "error", sendErr)
				}
			}
			return res, nil
		})
	}
}
