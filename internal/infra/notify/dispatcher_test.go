package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appnotify "github.com/raburski/friends-place-sub000/internal/app/notify"
	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	"github.com/raburski/friends-place-sub000/internal/domain/shared/clock"
	"github.com/raburski/friends-place-sub000/internal/infra/storage/memory"
)

type fakeProducer struct {
	topic   string
	key     string
	payload []byte
	fail    error
}

func (p *fakeProducer) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	if p.fail != nil {
		return p.fail
	}
	p.topic = topic
	p.key = key
	p.payload = payload
	return nil
}

func TestDispatcherPersistsAndPublishes(t *testing.T) {
	store := memory.NewNotificationRepository()
	producer := &fakeProducer{}
	at := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	d := &Dispatcher{Store: store, Producer: producer, Clock: clock.Fixed{At: at}, TopicPrefix: "dev."}

	err := d.Notify(context.Background(), appnotify.Message{
		UserID: "gary",
		Type:   domainnotification.TypeBookingApproved,
		Payload: map[string]string{
			"placeId": "pl-1", "bookingId": "bk-1", "placeName": "Cabin",
			"startDate": "2026-09-10", "endDate": "2026-09-15",
		},
	})
	require.NoError(t, err)

	stored, err := store.ListByUser(context.Background(), "gary")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, domainnotification.TypeBookingApproved, stored[0].Type)
	assert.Equal(t, at, stored[0].CreatedAt)
	assert.Nil(t, stored[0].ReadAt)

	assert.Equal(t, "dev.notifications.events.v1", producer.topic)
	assert.Equal(t, "gary", producer.key)

	var event map[string]any
	require.NoError(t, json.Unmarshal(producer.payload, &event))
	assert.Equal(t, "gary", event["userId"])
	assert.Equal(t, "booking_approved", event["type"])
}

func TestDispatcherSwallowsPublishFailure(t *testing.T) {
	store := memory.NewNotificationRepository()
	d := &Dispatcher{Store: store, Producer: &fakeProducer{fail: errors.New("broker down")}}

	err := d.Notify(context.Background(), appnotify.Message{
		UserID: "gary", Type: domainnotification.TypeBookingDeclined,
	})
	require.NoError(t, err)

	stored, err := store.ListByUser(context.Background(), "gary")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestDispatcherWithoutProducer(t *testing.T) {
	store := memory.NewNotificationRepository()
	d := &Dispatcher{Store: store}

	err := d.Notify(context.Background(), appnotify.Message{
		UserID: "gary", Type: domainnotification.TypeBookingCanceled,
	})
	require.NoError(t, err)
}
