// Package filemap keeps the uploaded-file bookkeeping collection in step
// with the documents that reference those files.
//
// Each record in the collection carries a mappedStatus flag (some document
// links it) and a markedAsDelete flag (no document links it any more, the
// upload may be collected). Repositories never write these flags directly;
// they hand id lists to a Dispatcher after their own write succeeded.
package filemap

import (
	"context"
	"fmt"

	"github.com/vendorhub/vendorhub/backend/go-services/internal/store"
	"go.mongodb.org/mongo-driver/bson"
)

// Status is the flag pair written onto file records.
type Status struct {
	MappedStatus   bool
	MarkedAsDelete bool
}

var (
	// Attached marks files referenced by a document.
	Attached = Status{MappedStatus: true, MarkedAsDelete: false}
	// Detached marks files no longer referenced. Attaching again restores Attached.
	Detached = Status{MappedStatus: false, MarkedAsDelete: true}
)

func (s Status) String() string {
	switch s {
	case Attached:
		return "attached"
	case Detached:
		return "detached"
	default:
		return fmt.Sprintf("mapped=%t,deleted=%t", s.MappedStatus, s.MarkedAsDelete)
	}
}

func (s Status) update() bson.M {
	return bson.M{"$set": bson.M{"mappedStatus": s.MappedStatus, "markedAsDelete": s.MarkedAsDelete}}
}

// Tracker bulk-updates file record status.
type Tracker interface {
	BulkSetStatus(ctx context.Context, ids []interface{}, status Status) error
}

// StoreTracker writes status flags into the file map collection.
type StoreTracker struct {
	col store.Collection
}

func NewStoreTracker(col store.Collection) *StoreTracker {
	return &StoreTracker{col: col}
}

// BulkSetStatus is a no-op for an empty id list.
func (t *StoreTracker) BulkSetStatus(ctx context.Context, ids []interface{}, status Status) error {
	if len(ids) == 0 {
		return nil
	}
	filter := bson.M{"_id": bson.M{"$in": bson.A(ids)}}
	if _, err := t.col.UpdateMany(ctx, filter, status.update()); err != nil {
		return fmt.Errorf("set file status %s: %w", status, err)
	}
	return nil
}
