package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type PlaceRepository struct {
	col *mongo.Collection
}

func NewPlaceRepository(db *mongo.Database) *PlaceRepository {
	return &PlaceRepository{col: db.Collection("places")}
}

func (r *PlaceRepository) ByID(ctx context.Context, id domainplace.PlaceID) (*domainplace.Place, error) {
	var doc placeDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainplace.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PlaceRepository) Save(ctx context.Context, p *domainplace.Place) error {
	doc := newPlaceDocument(p)
	filter := bson.M{"_id": doc.ID, "version": p.Version}
	doc.Version = p.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	p.Version = doc.Version
	return nil
}

func (r *PlaceRepository) ListByOwner(ctx context.Context, owner domainplace.UserID) ([]*domainplace.Place, error) {
	cur, err := r.col.Find(ctx, bson.M{"owner_id": string(owner)})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainplace.Place
	for cur.Next(ctx) {
		var doc placeDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cur.Err()
}

type placeDocument struct {
	ID          string `bson:"_id"`
	OwnerID     string `bson:"owner_id"`
	Name        string `bson:"name"`
	Description string `bson:"description"`
	IsActive    bool   `bson:"is_active"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
	Version     int64  `bson:"version"`
}

func newPlaceDocument(p *domainplace.Place) placeDocument {
	return placeDocument{
		ID:          string(p.ID),
		OwnerID:     string(p.OwnerID),
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.UnixMilli(),
		UpdatedAt:   p.UpdatedAt.UnixMilli(),
		Version:     p.Version,
	}
}

func (d placeDocument) toAggregate() *domainplace.Place {
	return &domainplace.Place{
		ID:          domainplace.PlaceID(d.ID),
		OwnerID:     domainplace.UserID(d.OwnerID),
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
		Version:     d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ domainplace.Repository = (*PlaceRepository)(nil)
