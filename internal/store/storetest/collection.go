// Package storetest provides a scripted in-memory store.Collection for
// repository and tracker tests.
package storetest

import (
	"context"
	"sync"

	"github.com/vendorhub/vendorhub/backend/go-services/internal/store"
	"go.mongodb.org/mongo-driver/bson"
)

// Call records one invocation against the fake.
type Call struct {
	Op         string
	Filter     interface{}
	Update     interface{}
	Doc        bson.M
	Projection bson.M
	Options    store.FindOptions
}

// Collection answers every operation through an optional hook. Unset hooks
// fall back to an empty, successful answer. It is safe for concurrent use.
type Collection struct {
	CollName string

	FindFn             func(filter interface{}, opts store.FindOptions) ([]bson.M, error)
	CountFn            func(filter interface{}) (int64, error)
	FindOneFn          func(filter interface{}, projection bson.M) (bson.M, error)
	InsertFn           func(doc bson.M) (bson.M, error)
	FindOneAndUpdateFn func(filter, update interface{}) (bson.M, error)
	UpdateOneFn        func(filter, update interface{}) (int64, error)
	UpdateManyFn       func(filter, update interface{}) (int64, error)
	DeleteOneFn        func(filter interface{}) (int64, error)

	mu    sync.Mutex
	calls []Call
}

var _ store.Collection = (*Collection)(nil)

func New(name string) *Collection { return &Collection{CollName: name} }

func (c *Collection) record(call Call) {
	c.mu.Lock()
	c.calls = append(c.calls, call)
	c.mu.Unlock()
}

// Calls returns a snapshot of recorded calls, optionally filtered by op.
func (c *Collection) Calls(ops ...string) []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Call, 0, len(c.calls))
	for _, call := range c.calls {
		if len(ops) == 0 {
			out = append(out, call)
			continue
		}
		for _, op := range ops {
			if call.Op == op {
				out = append(out, call)
				break
			}
		}
	}
	return out
}

func (c *Collection) Name() string { return c.CollName }

func (c *Collection) Find(_ context.Context, filter interface{}, opts store.FindOptions) ([]bson.M, error) {
	c.record(Call{Op: "find", Filter: filter, Options: opts, Projection: opts.Projection})
	if c.FindFn != nil {
		return c.FindFn(filter, opts)
	}
	return []bson.M{}, nil
}

func (c *Collection) Count(_ context.Context, filter interface{}) (int64, error) {
	c.record(Call{Op: "count", Filter: filter})
	if c.CountFn != nil {
		return c.CountFn(filter)
	}
	return 0, nil
}

func (c *Collection) FindOne(_ context.Context, filter interface{}, projection bson.M) (bson.M, error) {
	c.record(Call{Op: "find_one", Filter: filter, Projection: projection})
	if c.FindOneFn != nil {
		return c.FindOneFn(filter, projection)
	}
	return nil, nil
}

func (c *Collection) Insert(_ context.Context, doc bson.M) (bson.M, error) {
	c.record(Call{Op: "insert", Doc: doc})
	if c.InsertFn != nil {
		return c.InsertFn(doc)
	}
	return doc, nil
}

func (c *Collection) FindOneAndUpdate(_ context.Context, filter, update interface{}) (bson.M, error) {
	c.record(Call{Op: "find_one_and_update", Filter: filter, Update: update})
	if c.FindOneAndUpdateFn != nil {
		return c.FindOneAndUpdateFn(filter, update)
	}
	return nil, nil
}

func (c *Collection) UpdateOne(_ context.Context, filter, update interface{}) (int64, error) {
	c.record(Call{Op: "update_one", Filter: filter, Update: update})
	if c.UpdateOneFn != nil {
		return c.UpdateOneFn(filter, update)
	}
	return 1, nil
}

func (c *Collection) UpdateMany(_ context.Context, filter, update interface{}) (int64, error) {
	c.record(Call{Op: "update_many", Filter: filter, Update: update})
	if c.UpdateManyFn != nil {
		return c.UpdateManyFn(filter, update)
	}
	return 0, nil
}

func (c *Collection) DeleteOne(_ context.Context, filter interface{}) (int64, error) {
	c.record(Call{Op: "delete", Filter: filter})
	if c.DeleteOneFn != nil {
		return c.DeleteOneFn(filter)
	}
	return 1, nil
}
