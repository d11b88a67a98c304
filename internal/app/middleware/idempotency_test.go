package middleware

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
)

type replayResult struct {
	Value string `json:"value"`
}

type replayCommand struct {
	key string
}

func (c replayCommand) Key() string            { return "replay.test" }
func (c replayCommand) IdempotencyKey() string { return c.key }
func (c replayCommand) ResultPrototype() any   { return &replayResult{} }

type mapStore struct {
	records map[string]IdempotencyRecord
}

func newMapStore() *mapStore {
	return &mapStore{records: make(map[string]IdempotencyRecord)}
}

func (s *mapStore) Get(ctx context.Context, key string) (IdempotencyRecord, bool, error) {
	rec, ok := s.records[key]
	return rec, ok, nil
}

func (s *mapStore) Save(ctx context.Context, rec IdempotencyRecord) error {
	s.records[rec.Key] = rec
	return nil
}

func TestIdempotencyReplaysResult(t *testing.T) {
	calls := 0
	inner := commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return &replayResult{Value: "first"}, nil
	})

	bus := ChainCommands(inner, Idempotency(newMapStore()))
	cmd := replayCommand{key: "abc"}

	res, err := bus.Dispatch(context.Background(), cmd)
	require.NoError(t, err)
	require.Equal(t, &replayResult{Value: "first"}, res)

	res, err = bus.Dispatch(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, &replayResult{Value: "first"}, res)
	assert.Equal(t, 1, calls)
}

func TestIdempotencyReplaysError(t *testing.T) {
	calls := 0
	inner := commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return nil, assert.AnError
	})

	bus := ChainCommands(inner, Idempotency(newMapStore()))
	cmd := replayCommand{key: "abc"}

	_, err := bus.Dispatch(context.Background(), cmd)
	require.Error(t, err)

	_, err = bus.Dispatch(context.Background(), cmd)
	require.Error(t, err)
	assert.EqualError(t, err, assert.AnError.Error())
	assert.Equal(t, 1, calls)
}

func TestIdempotencyReplayKeepsSentinelIdentity(t *testing.T) {
	calls := 0
	inner := commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return nil, fmt.Errorf("checking gates: %w", domainbooking.ErrPlaceUnavailable)
	})

	bus := ChainCommands(inner, Idempotency(newMapStore()))
	cmd := replayCommand{key: "abc"}

	_, err := bus.Dispatch(context.Background(), cmd)
	assert.ErrorIs(t, err, domainbooking.ErrPlaceUnavailable)

	// The replay must satisfy errors.Is so the HTTP layer maps the retry to
	// the same status as the original dispatch.
	_, err = bus.Dispatch(context.Background(), cmd)
	assert.ErrorIs(t, err, domainbooking.ErrPlaceUnavailable)
	assert.Equal(t, 1, calls)
}

func TestIdempotencyReplayRehydratesExtraSentinels(t *testing.T) {
	infraErr := errors.New("store: concurrent update detected")
	calls := 0
	inner := commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return nil, infraErr
	})

	bus := ChainCommands(inner, Idempotency(newMapStore(), infraErr))
	cmd := replayCommand{key: "abc"}

	_, err := bus.Dispatch(context.Background(), cmd)
	require.Error(t, err)

	_, err = bus.Dispatch(context.Background(), cmd)
	assert.ErrorIs(t, err, infraErr)
	assert.Equal(t, 1, calls)
}

func TestIdempotencyBypassedWithoutKey(t *testing.T) {
	calls := 0
	inner := commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return &replayResult{Value: "x"}, nil
	})

	bus := ChainCommands(inner, Idempotency(newMapStore()))
	cmd := replayCommand{}

	_, err := bus.Dispatch(context.Background(), cmd)
	require.NoError(t, err)
	_, err = bus.Dispatch(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
