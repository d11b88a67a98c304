package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"github.com/raburski/friends-place-sub000/internal/app/commands"
	domainavailability "github.com/raburski/friends-place-sub000/internal/domain/availability"
	domainbooking "github.com/raburski/friends-place-sub000/internal/domain/booking"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
	domainrange "github.com/raburski/friends-place-sub000/internal/domain/shared/daterange"
)

// IdempotentCommand must be implemented by commands that want retry-safe
// dispatch (the HTTP layer forwards the Idempotency-Key header).
type IdempotentCommand interface {
	commands.Command
	IdempotencyKey() string
	ResultPrototype() any
}

type IdempotencyRecord struct {
	Key        string
	Payload    []byte
	Error      string
	ErrorKind  string
	OccurredAt time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string) (IdempotencyRecord, bool, error)
	Save(ctx context.Context, rec IdempotencyRecord) error
}

var errMissingPrototype = errors.New("middleware: idempotent command requires result prototype")

// Failures recorded under an idempotency key must keep their sentinel
// identity, otherwise a retried command maps to a different HTTP status than
// the original dispatch. ErrorKind carries the sentinel message; the wrapped
// detail around it is not preserved across a replay.
var replayableSentinels = []error{
	domainrange.ErrInvalidRange,
	domainrange.ErrInvalidDates,
	domainplace.ErrNotFound,
	domainplace.ErrNotOwner,
	domainplace.ErrInactive,
	domainplace.ErrCannotBookOwn,
	domainavailability.ErrNotFound,
	domainavailability.ErrNoAvailability,
	domainbooking.ErrNotFound,
	domainbooking.ErrInvalidStatus,
	domainbooking.ErrPlaceUnavailable,
	domainbooking.ErrGuestUnavailable,
}

// Idempotency replays the recorded outcome for a previously seen key instead
// of re-executing the command. Extra sentinels (infra errors the middleware
// cannot import) can be registered by the caller.
func Idempotency(store IdempotencyStore, extra ...error) CommandMiddleware {
	if store == nil {
		panic("middleware: idempotency store required")
	}
	sentinels := append(append([]error{}, replayableSentinels...), extra...)
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			idCmd, ok := cmd.(IdempotentCommand)
			if !ok {
				return nextFn(ctx, cmd)
			}
			key := idCmd.IdempotencyKey()
			if key == "" {
				return nextFn(ctx, cmd)
			}
			rec, found, err := store.Get(ctx, key)
			if err != nil {
				return nil, err
			}
			if found {
				if rec.Error != "" {
					return nil, rehydrateError(rec, sentinels)
				}
				proto := idCmd.ResultPrototype()
				if proto == nil {
					return nil, errMissingPrototype
				}
				if err := json.Unmarshal(rec.Payload, proto); err != nil {
					return nil, err
				}
				return normalizePrototype(proto), nil
			}
			result, err := nextFn(ctx, cmd)
			record := IdempotencyRecord{Key: key, OccurredAt: time.Now().UTC()}
			if err != nil {
				record.Error = err.Error()
				if s := matchSentinel(err, sentinels); s != nil {
					record.ErrorKind = s.Error()
				}
				if saveErr := store.Save(ctx, record); saveErr != nil {
					return nil, errors.Join(err, saveErr)
				}
				return nil, err
			}
			if result != nil {
				payload, encErr := json.Marshal(result)
				if encErr != nil {
					return nil, encErr
				}
				record.Payload = payload
			}
			if saveErr := store.Save(ctx, record); saveErr != nil {
				return nil, saveErr
			}
			return result, nil
		})
	}
}

func matchSentinel(err error, sentinels []error) error {
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s
		}
	}
	return nil
}

func rehydrateError(rec IdempotencyRecord, sentinels []error) error {
	if rec.ErrorKind != "" {
		for _, s := range sentinels {
			if s.Error() == rec.ErrorKind {
				return s
			}
		}
	}
	return errors.New(rec.Error)
}

func normalizePrototype(proto any) any {
	rv := reflect.ValueOf(proto)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return rv.Interface()
	}
	return proto
}
