package filemap

import (
	"context"
	"fmt"
	"strings"

	"github.com/vendorhub/vendorhub/backend/go-services/internal/query"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/store"
	"github.com/vendorhub/vendorhub/backend/go-services/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
)

// Presigner turns a stored object key into a download URL.
type Presigner interface {
	PresignedURL(ctx context.Context, key string) (string, error)
}

// Expander replaces image id arrays in documents with the referenced file
// records, reduced to {_id, urls}. Ids without a record are dropped.
type Expander struct {
	col       store.Collection
	presigner Presigner
}

// NewExpander returns an expander reading from the file map collection.
// presigner may be nil.
func NewExpander(col store.Collection, presigner Presigner) *Expander {
	return &Expander{col: col, presigner: presigner}
}

// Expand rewrites the arrays found at paths in every doc. A path is either a
// top-level field ("imagesCL") or a field inside a top-level array of
// embedded documents ("showcases.imagesCL").
func (e *Expander) Expand(ctx context.Context, docs []bson.M, paths ...string) error {
	if e == nil || len(docs) == 0 || len(paths) == 0 {
		return nil
	}

	var ids []interface{}
	seen := map[string]bool{}
	for _, doc := range docs {
		for _, p := range paths {
			visit(doc, p, func(arr []interface{}) []interface{} {
				for _, v := range arr {
					id := refID(v)
					if k := query.IDString(id); k != "" && !seen[k] {
						seen[k] = true
						ids = append(ids, id)
					}
				}
				return arr
			})
		}
	}

	records := map[string]bson.M{}
	if len(ids) > 0 {
		found, err := e.col.Find(ctx, bson.M{"_id": bson.M{"$in": bson.A(ids)}},
			store.FindOptions{Projection: bson.M{"urls": 1, "key": 1}})
		if err != nil {
			return fmt.Errorf("expand images: %w", err)
		}
		for _, rec := range found {
			records[query.IDString(rec["_id"])] = e.record(ctx, rec)
		}
	}

	for _, doc := range docs {
		for _, p := range paths {
			visit(doc, p, func(arr []interface{}) []interface{} {
				out := bson.A{}
				for _, v := range arr {
					if rec, ok := records[query.IDString(refID(v))]; ok {
						out = append(out, rec)
					}
				}
				return out
			})
		}
	}
	return nil
}

func (e *Expander) record(ctx context.Context, rec bson.M) bson.M {
	out := bson.M{"_id": rec["_id"]}
	if urls, ok := store.AsArray(rec["urls"]); ok && len(urls) > 0 {
		out["urls"] = bson.A(urls)
		return out
	}
	out["urls"] = bson.A{}
	key, _ := rec["key"].(string)
	if key == "" || e.presigner == nil {
		return out
	}
	u, err := e.presigner.PresignedURL(ctx, key)
	if err != nil {
		logger.Warnf("filemap: presign %s: %v", key, err)
		return out
	}
	out["urls"] = bson.A{u}
	return out
}

// refID accepts a raw id or an already expanded record.
func refID(v interface{}) interface{} {
	if d, ok := store.AsDoc(v); ok {
		return d["_id"]
	}
	return v
}

func visit(doc bson.M, path string, fn func([]interface{}) []interface{}) {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		if arr, ok := store.AsArray(doc[head]); ok {
			doc[head] = fn(arr)
		}
		return
	}
	items, ok := store.AsArray(doc[head])
	if !ok {
		return
	}
	for i, item := range items {
		sub, ok := store.AsDoc(item)
		if !ok {
			continue
		}
		visit(sub, rest, fn)
		items[i] = sub
	}
	doc[head] = items
}
