package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainnotification "github.com/raburski/friends-place-sub000/internal/domain/notification"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection("notifications")}
}

func (r *NotificationRepository) ByID(ctx context.Context, id domainnotification.NotificationID) (*domainnotification.Notification, error) {
	var doc notificationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainnotification.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *NotificationRepository) Save(ctx context.Context, n *domainnotification.Notification) error {
	doc := newNotificationDocument(n)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *NotificationRepository) ListByUser(ctx context.Context, user domainplace.UserID) ([]*domainnotification.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": string(user)}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainnotification.Notification
	for cur.Next(ctx) {
		var doc notificationDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toEntity())
	}
	return out, cur.Err()
}

type notificationDocument struct {
	ID        string            `bson:"_id"`
	UserID    string            `bson:"user_id"`
	Type      string            `bson:"type"`
	Payload   map[string]string `bson:"payload"`
	ReadAt    *int64            `bson:"read_at,omitempty"`
	CreatedAt int64             `bson:"created_at"`
}

func newNotificationDocument(n *domainnotification.Notification) notificationDocument {
	doc := notificationDocument{
		ID:        string(n.ID),
		UserID:    string(n.UserID),
		Type:      string(n.Type),
		Payload:   n.Payload,
		CreatedAt: n.CreatedAt.UnixMilli(),
	}
	if n.ReadAt != nil {
		ms := n.ReadAt.UnixMilli()
		doc.ReadAt = &ms
	}
	return doc
}

func (d notificationDocument) toEntity() *domainnotification.Notification {
	n := &domainnotification.Notification{
		ID:        domainnotification.NotificationID(d.ID),
		UserID:    domainplace.UserID(d.UserID),
		Type:      domainnotification.Type(d.Type),
		Payload:   d.Payload,
		CreatedAt: timestampToTime(d.CreatedAt),
	}
	if d.ReadAt != nil {
		at := time.UnixMilli(*d.ReadAt).UTC()
		n.ReadAt = &at
	}
	return n
}

var _ domainnotification.Repository = (*NotificationRepository)(nil)
