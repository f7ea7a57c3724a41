package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"njeyali/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCounterRepo allocates sequence numbers from a "counters" collection.
// Each key (one per calendar day for booking references) maps to a single
// document whose seq field is bumped with an atomic $inc upsert, so two
// concurrent callers can never observe the same value. A read-then-write
// count would race here.
type MongoCounterRepo struct {
	coll *mongo.Collection
}

func NewMongoCounterRepo() *MongoCounterRepo {
	return &MongoCounterRepo{
		coll: database.DB().Collection("counters"),
	}
}

// Next atomically increments and returns the counter for key.
func (r *MongoCounterRepo) Next(ctx context.Context, key string) (int64, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": key}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.coll.FindOneAndUpdate(ctxWithTimeout, filter, update, opts).Decode(&doc); err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", key, err)
	}
	return doc.Seq, nil
}
