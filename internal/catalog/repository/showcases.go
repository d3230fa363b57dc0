package repository

import (
	"context"

	"github.com/vendorhub/vendorhub/backend/go-services/internal/apperr"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/query"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/store"
	"go.mongodb.org/mongo-driver/bson"
)

// Showcase fields that PatchShowcase never writes.
var showcaseLocked = []string{FieldImages, FieldFilters, FieldID}

type ShowcaseQuery struct {
	Select string
}

// ListShowcases returns every showcase of the service found by identifier.
func (r *Repository) ListShowcases(ctx context.Context, identifier string, q ShowcaseQuery) ([]bson.M, error) {
	if err := r.requireShowcases(); err != nil {
		return nil, err
	}
	if identifier == "" {
		return nil, apperr.Validation("service identifier missing")
	}

	sel := query.NormalizeSelection(q.Select)
	if sel == "" {
		sel = FieldShowcases
	} else {
		sel = query.WithField(sel, FieldShowcases)
	}
	doc, err := r.col.FindOne(ctx, query.BuildMatchQuery(identifier), query.Projection(sel))
	if err != nil {
		return nil, apperr.Store(err)
	}
	if doc == nil {
		return nil, apperr.NotFound("either service or showcase is not available")
	}
	if _, ok := store.AsArray(doc[FieldShowcases]); !ok {
		return nil, apperr.NotFound("either service or showcase is not available")
	}
	if r.expander != nil {
		if err := r.expander.Expand(ctx, []bson.M{doc}, FieldShowcases+"."+FieldImages); err != nil {
			return nil, apperr.Store(err)
		}
	}

	items, _ := store.AsArray(doc[FieldShowcases])
	out := make([]bson.M, 0, len(items))
	for _, item := range items {
		if sc, ok := store.AsDoc(item); ok {
			out = append(out, sc)
		}
	}
	return out, nil
}

// FindShowcase returns one showcase. An unknown showcase id on an existing
// service yields an empty document rather than an error.
func (r *Repository) FindShowcase(ctx context.Context, identifier, showcaseID string, q ShowcaseQuery) (bson.M, error) {
	if showcaseID == "" {
		return nil, apperr.Validation("showcase identifier missing")
	}
	showcases, err := r.ListShowcases(ctx, identifier, q)
	if err != nil {
		return nil, err
	}
	for _, sc := range showcases {
		if query.IDString(sc[FieldID]) == showcaseID {
			return sc, nil
		}
	}
	return bson.M{}, nil
}

// AppendShowcase pushes a new showcase onto the service and marks its
// images attached.
func (r *Repository) AppendShowcase(ctx context.Context, serviceID string, showcase bson.M, opts MutationOptions) (bson.M, error) {
	if err := r.requireShowcases(); err != nil {
		return nil, err
	}
	if serviceID == "" || showcase == nil {
		return nil, apperr.Validation("service identifier or showcase missing")
	}
	sc, _ := prepareShowcase(showcase)

	update := bson.M{"$push": bson.M{FieldShowcases: sc}}
	if opts.LastModifiedBy != "" {
		update["$set"] = bson.M{FieldModBy: opts.LastModifiedBy}
	}
	doc, err := r.update(ctx, bson.M{FieldID: query.IDValue(serviceID)}, update)
	if err != nil {
		return nil, err
	}
	r.attach(collectAt(sc, FieldImages))
	return doc, nil
}

// ReplaceShowcase swaps the showcase carrying showcase._id for the given
// one in a single store update. The stored imagesCL of that showcase is kept;
// images change only through the image-link operations.
func (r *Repository) ReplaceShowcase(ctx context.Context, serviceID string, showcase bson.M, opts MutationOptions) (bson.M, error) {
	if err := r.requireShowcases(); err != nil {
		return nil, err
	}
	if serviceID == "" || showcase == nil {
		return nil, apperr.Validation("service identifier or showcase missing")
	}
	rawID, ok := showcase[FieldID]
	if !ok || rawID == nil || rawID == "" {
		return nil, apperr.Validation("_id property is missing from the showcase")
	}
	sid := castID(rawID)

	body := updateSet(showcase, "", func(k string) bool { return !matchesAny(k, []string{FieldImages}) })
	body[FieldID] = sid

	stage := bson.M{
		FieldShowcases: bson.M{"$map": bson.M{
			"input": "$" + FieldShowcases,
			"as":    "s",
			"in": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$$s._id", bson.M{"$literal": sid}}},
				bson.M{"$mergeObjects": bson.A{
					bson.M{"$literal": body},
					bson.M{FieldImages: "$$s." + FieldImages},
				}},
				"$$s",
			}},
		}},
	}
	if opts.LastModifiedBy != "" {
		stage[FieldModBy] = bson.M{"$literal": opts.LastModifiedBy}
	}
	filter := bson.M{FieldID: query.IDValue(serviceID), FieldShowcases + "._id": sid}
	return r.update(ctx, filter, bson.A{bson.M{"$set": stage}})
}

// PatchShowcase sets individual fields of one showcase. imagesCL, filters and
// _id are silently dropped from props.
func (r *Repository) PatchShowcase(ctx context.Context, serviceID, showcaseID string, props bson.M, opts MutationOptions) (bson.M, error) {
	if err := r.requireShowcases(); err != nil {
		return nil, err
	}
	if serviceID == "" || showcaseID == "" {
		return nil, apperr.Validation("service or showcase identifier missing")
	}
	filter := bson.M{FieldID: query.IDValue(serviceID), FieldShowcases + "._id": query.IDValue(showcaseID)}

	set := updateSet(props, FieldShowcases+".$.", func(k string) bool { return !matchesAny(k, showcaseLocked) })
	if len(set) == 0 {
		return r.current(ctx, filter)
	}
	if opts.LastModifiedBy != "" {
		set[FieldModBy] = opts.LastModifiedBy
	}
	return r.update(ctx, filter, bson.M{"$set": set})
}

// RemoveShowcase loads the service, drops the showcase and writes the
// remaining list back. The images of the removed showcase are detached only
// after that write succeeded. A concurrent change to the same service between
// the read and the write is lost.
func (r *Repository) RemoveShowcase(ctx context.Context, serviceID, showcaseID string) error {
	if err := r.requireShowcases(); err != nil {
		return err
	}
	if serviceID == "" || showcaseID == "" {
		return apperr.Validation("service or showcase identifier missing")
	}

	doc, err := r.col.FindOne(ctx, bson.M{FieldID: query.IDValue(serviceID)}, bson.M{FieldShowcases: 1})
	if err != nil {
		return apperr.Store(err)
	}
	if doc == nil {
		return r.notFound()
	}
	items, ok := store.AsArray(doc[FieldShowcases])
	if !ok {
		return apperr.NotFound("showcase not found")
	}

	var images []interface{}
	remaining := make(bson.A, 0, len(items))
	found := false
	for _, item := range items {
		if sc, ok := store.AsDoc(item); ok && !found && query.IDString(sc[FieldID]) == showcaseID {
			images = collectAt(sc, FieldImages)
			found = true
			continue
		}
		remaining = append(remaining, item)
	}
	if !found {
		return apperr.NotFound("showcase not found")
	}

	n, err := r.col.UpdateOne(ctx, bson.M{FieldID: doc[FieldID]}, bson.M{"$set": bson.M{FieldShowcases: remaining}})
	if err != nil {
		return apperr.Store(err)
	}
	if n == 0 {
		return r.notFound()
	}
	r.detach(images)
	return nil
}

func (r *Repository) requireShowcases() error {
	if !r.schema.Showcases {
		return apperr.Validation(r.schema.Resource + " has no showcases")
	}
	return nil
}
