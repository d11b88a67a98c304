package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	"github.com/raburski/friends-place-sub000/internal/app/notify"
)

type testCommand struct{ key string }

func (c testCommand) Key() string { return c.key }

type recordingSink struct {
	delivered []notify.Message
	fail      error
}

func (s *recordingSink) Notify(ctx context.Context, msg notify.Message) error {
	if s.fail != nil {
		return s.fail
	}
	s.delivered = append(s.delivered, msg)
	return nil
}

func TestNotificationsFlushAfterSuccess(t *testing.T) {
	sink := &recordingSink{}
	inner := commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		notify.Stage(ctx, notify.Message{UserID: "gary", Type: "booking_approved"})
		return "ok", nil
	})

	bus := ChainCommands(inner, Notifications(sink, nil))
	res, err := bus.Dispatch(context.Background(), testCommand{key: "test"})
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
	require.Len(t, sink.delivered, 1)
	assert.Equal(t, notify.Message{UserID: "gary", Type: "booking_approved"}, sink.delivered[0])
}

func TestNotificationsSkippedOnFailure(t *testing.T) {
	sink := &recordingSink{}
	boom := errors.New("gate failed")
	inner := commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		notify.Stage(ctx, notify.Message{UserID: "gary", Type: "booking_approved"})
		return nil, boom
	})

	bus := ChainCommands(inner, Notifications(sink, nil))
	_, err := bus.Dispatch(context.Background(), testCommand{key: "test"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, sink.delivered)
}

func TestNotificationsSinkFailureDoesNotFailCommand(t *testing.T) {
	sink := &recordingSink{fail: errors.New("broker down")}
	inner := commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		notify.Stage(ctx, notify.Message{UserID: "gary", Type: "booking_approved"})
		return "ok", nil
	})

	bus := ChainCommands(inner, Notifications(sink, nil))
	res, err := bus.Dispatch(context.Background(), testCommand{key: "test"})
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
}
