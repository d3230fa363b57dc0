package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vendorhub/vendorhub/backend/go-services/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCollection implements Collection on top of a driver collection and
// records per-operation latency and failures.
type MongoCollection struct {
	col *mongo.Collection
}

func NewMongoCollection(col *mongo.Collection) *MongoCollection {
	return &MongoCollection{col: col}
}

func (m *MongoCollection) Name() string { return m.col.Name() }

func (m *MongoCollection) observe(op string, start time.Time, err error) {
	metrics.StoreOperationDuration.WithLabelValues(m.col.Name(), op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreOperationErrors.WithLabelValues(m.col.Name(), op).Inc()
	}
}

func (m *MongoCollection) Find(ctx context.Context, filter interface{}, opts FindOptions) (out []bson.M, err error) {
	defer func(start time.Time) { m.observe("find", start, err) }(time.Now())

	fo := options.Find()
	if len(opts.Projection) > 0 {
		fo.SetProjection(opts.Projection)
	}
	if opts.Skip != 0 {
		fo.SetSkip(opts.Skip)
	}
	if opts.Limit != 0 {
		fo.SetLimit(opts.Limit)
	}
	cur, err := m.col.Find(ctx, filter, fo)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", m.col.Name(), err)
	}
	defer cur.Close(ctx)

	out = []bson.M{}
	if err = cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.col.Name(), err)
	}
	return out, nil
}

func (m *MongoCollection) Count(ctx context.Context, filter interface{}) (n int64, err error) {
	defer func(start time.Time) { m.observe("count", start, err) }(time.Now())

	n, err = m.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", m.col.Name(), err)
	}
	return n, nil
}

func (m *MongoCollection) FindOne(ctx context.Context, filter interface{}, projection bson.M) (doc bson.M, err error) {
	defer func(start time.Time) { m.observe("find_one", start, err) }(time.Now())

	fo := options.FindOne()
	if len(projection) > 0 {
		fo.SetProjection(projection)
	}
	err = m.col.FindOne(ctx, filter, fo).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one %s: %w", m.col.Name(), err)
	}
	return doc, nil
}

// Insert assigns an ObjectID when the document has no _id and returns the
// stored document.
func (m *MongoCollection) Insert(ctx context.Context, doc bson.M) (_ bson.M, err error) {
	defer func(start time.Time) { m.observe("insert", start, err) }(time.Now())

	if doc == nil {
		doc = bson.M{}
	}
	if _, ok := doc["_id"]; !ok {
		doc["_id"] = primitive.NewObjectID()
	}
	if _, err = m.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert %s: %w", m.col.Name(), err)
	}
	return doc, nil
}

func (m *MongoCollection) FindOneAndUpdate(ctx context.Context, filter, update interface{}) (doc bson.M, err error) {
	defer func(start time.Time) { m.observe("find_one_and_update", start, err) }(time.Now())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = m.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", m.col.Name(), err)
	}
	return doc, nil
}

func (m *MongoCollection) UpdateOne(ctx context.Context, filter, update interface{}) (_ int64, err error) {
	defer func(start time.Time) { m.observe("update_one", start, err) }(time.Now())

	res, err := m.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", m.col.Name(), err)
	}
	return res.MatchedCount, nil
}

func (m *MongoCollection) UpdateMany(ctx context.Context, filter, update interface{}) (_ int64, err error) {
	defer func(start time.Time) { m.observe("update_many", start, err) }(time.Now())

	res, err := m.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("update many %s: %w", m.col.Name(), err)
	}
	return res.ModifiedCount, nil
}

func (m *MongoCollection) DeleteOne(ctx context.Context, filter interface{}) (_ int64, err error) {
	defer func(start time.Time) { m.observe("delete", start, err) }(time.Now())

	res, err := m.col.DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", m.col.Name(), err)
	}
	return res.DeletedCount, nil
}
