package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	appnotify "github.com/raburski/friends-place-sub000/internal/app/notify"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/clock"
)

// Producer is the broker surface the dispatcher publishes to. Matches the
// kafka producer; nil disables publishing.
type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

const defaultTopic = "notifications.events.v1"

// Dispatcher persists committed notification messages and fans them out to
// the broker. It implements the application sink; every path is best-effort
// by contract, so a broker outage costs delivery but never a booking
// transition.
type Dispatcher struct {
	Store       domainnotification.Repository
	Producer    Producer
	Logger      *slog.Logger
	Clock       clock.Clock
	TopicPrefix string
}

func (d *Dispatcher) Notify(ctx context.Context, msg appnotify.Message) error {
	rec := &domainnotification.Notification{
		ID:        domainnotification.NotificationID(uuid.NewString()),
		UserID:    msg.UserID,
		Type:      msg.Type,
		Payload:   msg.Payload,
		CreatedAt: d.now(),
	}
	if d.Store != nil {
		if err := d.Store.Save(ctx, rec); err != nil {
			return err
		}
	}
	if d.Producer != nil {
		if err := d.publish(ctx, rec); err != nil && d.Logger != nil {
			d.Logger.Warn("notification publish failed", "notification_id", rec.ID, "type", rec.Type, "error", err)
		}
	}
	return nil
}

func (d *Dispatcher) publish(ctx context.Context, rec *domainnotification.Notification) error {
	payload, err := json.Marshal(map[string]any{
		"id":      string(rec.ID),
		"userId":  string(rec.UserID),
		"type":    string(rec.Type),
		"payload": rec.Payload,
		"time":    rec.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	topic := defaultTopic
	if d.TopicPrefix != "" {
		topic = d.TopicPrefix + topic
	}
	headers := map[string]string{"content-type": "application/json"}
	return d.Producer.Publish(ctx, topic, string(rec.UserID), payload, headers)
}

func (d *Dispatcher) now() time.Time {
	if d.Clock != nil {
		return d.Clock.Now()
	}
	return time.Now().UTC()
}

var _ appnotify.Sink = (*Dispatcher)(nil)
