package repository

import (
	"github.com/vendorhub/vendorhub/backend/go-services/internal/query"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// castID turns a canonical ObjectID string into an ObjectID. Anything else
// is stored as given.
func castID(v interface{}) interface{} {
	if s, ok := v.(string); ok {
		return query.IDValue(s)
	}
	return v
}

func castIDs(vals []interface{}) []interface{} {
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		out[i] = castID(v)
	}
	return out
}

// ensureID assigns a fresh ObjectID to doc when it has none.
func ensureID(doc bson.M) {
	if id, ok := doc[FieldID]; ok && id != nil && id != "" {
		doc[FieldID] = castID(id)
		return
	}
	doc[FieldID] = primitive.NewObjectID()
}

// prepareShowcase gives an embedded showcase its own id and casts its image ids.
func prepareShowcase(v interface{}) (bson.M, bool) {
	sc, ok := store.AsDoc(v)
	if !ok {
		return nil, false
	}
	ensureID(sc)
	if imgs, ok := store.AsArray(sc[FieldImages]); ok {
		sc[FieldImages] = bson.A(castIDs(imgs))
	}
	return sc, true
}

// prepareNew readies a document for insertion: ids are assigned and file
// reference ids cast.
func (s Schema) prepareNew(doc bson.M) {
	ensureID(doc)
	if s.hasImages() {
		if imgs, ok := store.AsArray(doc[FieldImages]); ok {
			doc[FieldImages] = bson.A(castIDs(imgs))
		}
	}
	if !s.Showcases {
		return
	}
	if items, ok := store.AsArray(doc[FieldShowcases]); ok {
		out := make(bson.A, 0, len(items))
		for _, item := range items {
			if sc, ok := prepareShowcase(item); ok {
				out = append(out, sc)
				continue
			}
			out = append(out, item)
		}
		doc[FieldShowcases] = out
	}
}

// imageIDs collects file reference ids from doc following the schema's image
// paths, top-level ids first and then each showcase in order.
func (s Schema) imageIDs(doc bson.M) []interface{} {
	var ids []interface{}
	for _, p := range s.ImagePaths {
		ids = append(ids, collectAt(doc, p)...)
	}
	return ids
}

func collectAt(doc bson.M, path string) []interface{} {
	for i := 0; i < len(path); i++ {
		if path[i] != '.' {
			continue
		}
		items, _ := store.AsArray(doc[path[:i]])
		var ids []interface{}
		for _, item := range items {
			if sub, ok := store.AsDoc(item); ok {
				ids = append(ids, collectAt(sub, path[i+1:])...)
			}
		}
		return ids
	}
	imgs, _ := store.AsArray(doc[path])
	return castIDs(imgs)
}

// updateSet copies the fields of props that may be written, keyed by prefix+key.
func updateSet(props bson.M, prefix string, allowed func(string) bool) bson.M {
	set := bson.M{}
	for k, v := range props {
		if !allowed(k) {
			continue
		}
		set[prefix+k] = v
	}
	return set
}
