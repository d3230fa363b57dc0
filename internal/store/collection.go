// Package store is the thin document-store seam the catalog repositories
// talk to. Documents are free-form bson.M values; the repositories own
// every query and update shape.
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// FindOptions shapes a multi-document read. Zero Skip/Limit mean "none".
type FindOptions struct {
	Projection bson.M
	Skip       int64
	Limit      int64
}

// Collection is the capability set the repositories need from one collection.
//
// FindOne and FindOneAndUpdate return a nil document (and nil error) when the
// filter matches nothing. FindOneAndUpdate always returns the document as it
// is after the update.
type Collection interface {
	Name() string
	Find(ctx context.Context, filter interface{}, opts FindOptions) ([]bson.M, error)
	Count(ctx context.Context, filter interface{}) (int64, error)
	FindOne(ctx context.Context, filter interface{}, projection bson.M) (bson.M, error)
	Insert(ctx context.Context, doc bson.M) (bson.M, error)
	FindOneAndUpdate(ctx context.Context, filter, update interface{}) (bson.M, error)
	UpdateOne(ctx context.Context, filter, update interface{}) (int64, error)
	UpdateMany(ctx context.Context, filter, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}
