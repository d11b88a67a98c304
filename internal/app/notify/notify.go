package notify

import (
	"context"

	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

// Message is a pending notification staged during a unit of work and handed
// to the sink only after the state transition commits. A sink failure can
// therefore never roll back the transition that produced it.
type Message struct {
	UserID  domainplace.UserID
	Type    domainnotification.Type
	Payload map[string]string
}

// Sink receives committed notification messages. Delivery is best-effort.
type Sink interface {
	Notify(ctx context.Context, msg Message) error
}

// Buffer collects messages raised while a command executes.
type Buffer struct {
	staged []Message
}

func (b *Buffer) Add(msg Message) {
	b.staged = append(b.staged, msg)
}

func (b *Buffer) Drain() []Message {
	out := b.staged
	b.staged = nil
	return out
}

type ctxKey struct{}

// WithBuffer attaches a fresh buffer to the context.
func WithBuffer(ctx context.Context) (context.Context, *Buffer) {
	buf := &Buffer{}
	return context.WithValue(ctx, ctxKey{}, buf), buf
}

// Stage records a message on the ambient buffer. Outside a command pipeline
// (no buffer in context) the message is dropped; notifications are advisory.
func Stage(ctx context.Context, msg Message) {
	if buf, ok := ctx.Value(ctxKey{}).(*Buffer); ok {
		buf.Add(msg)
	}
}
