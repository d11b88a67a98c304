package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	domainavailability "github.com/raburski/friends-place-sub000/internal/domain/availability"
	domainplace "github.com/raburski/friends-place-sub000/internal/domain/place"
	domainrange "github.com/raburski/friends-place-sub000/internal/domain/shared/daterange"
)

type AvailabilityRepository struct {
	col *mongo.Collection
}

func NewAvailabilityRepository(db *mongo.Database) *AvailabilityRepository {
	return &AvailabilityRepository{col: db.Collection("availability_ranges")}
}

func (r *AvailabilityRepository) ByID(ctx context.Context, id domainavailability.RangeID) (*domainavailability.Range, error) {
	var doc availabilityDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainavailability.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *AvailabilityRepository) ListByPlace(ctx context.Context, id domainplace.PlaceID) ([]*domainavailability.Range, error) {
	cur, err := r.col.Find(ctx, bson.M{"place_id": string(id)})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []*domainavailability.Range
	for cur.Next(ctx) {
		var doc availabilityDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toEntity())
	}
	return out, cur.Err()
}

func (r *AvailabilityRepository) Add(ctx context.Context, ranges []*domainavailability.Range) error {
	if len(ranges) == 0 {
		return nil
	}
	docs := make([]any, 0, len(ranges))
	for _, w := range ranges {
		docs = append(docs, newAvailabilityDocument(w))
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id domainavailability.RangeID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainavailability.ErrNotFound
	}
	return nil
}

type availabilityDocument struct {
	ID        string        `bson:"_id"`
	PlaceID   string        `bson:"place_id"`
	Range     rangeDocument `bson:"range"`
	CreatedAt int64         `bson:"created_at"`
}

func newAvailabilityDocument(w *domainavailability.Range) availabilityDocument {
	return availabilityDocument{
		ID:        string(w.ID),
		PlaceID:   string(w.PlaceID),
		Range:     rangeDocument{Start: w.Range.Start.UnixMilli(), End: w.Range.End.UnixMilli()},
		CreatedAt: w.CreatedAt.UnixMilli(),
	}
}

func (d availabilityDocument) toEntity() *domainavailability.Range {
	return &domainavailability.Range{
		ID:        domainavailability.RangeID(d.ID),
		PlaceID:   domainplace.PlaceID(d.PlaceID),
		Range:     domainrange.DateRange{Start: timestampToTime(d.Range.Start), End: timestampToTime(d.Range.End)},
		CreatedAt: timestampToTime(d.CreatedAt),
	}
}

var _ domainavailability.Repository = (*AvailabilityRepository)(nil)
