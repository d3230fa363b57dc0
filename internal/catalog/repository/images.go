package repository

import (
	"context"
	"encoding/json"

	"github.com/vendorhub/vendorhub/backend/go-services/internal/apperr"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/query"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/store"
	"go.mongodb.org/mongo-driver/bson"
)

// ImageIDs is a list of file reference ids that also accepts a single id
// when decoded from JSON.
type ImageIDs []string

func (ids *ImageIDs) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		if one == "" {
			*ids = nil
		} else {
			*ids = ImageIDs{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*ids = many
	return nil
}

func (ids ImageIDs) values() []interface{} {
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = castID(id)
	}
	return out
}

// ImageLinkOptions targets a showcase's imagesCL instead of the top-level one.
type ImageLinkOptions struct {
	ShowcaseID string
}

// AddImageLinks appends ids to the owner's (or one showcase's) imagesCL and
// marks them attached.
func (r *Repository) AddImageLinks(ctx context.Context, ownerID string, ids ImageIDs, opts ImageLinkOptions) (bson.M, error) {
	filter, field, err := r.imageTarget(ownerID, ids, opts)
	if err != nil {
		return nil, err
	}
	vals := ids.values()
	doc, err := r.update(ctx, filter, bson.M{"$push": bson.M{field: bson.M{"$each": bson.A(vals)}}})
	if err != nil {
		return nil, err
	}
	r.attach(vals)
	return doc, nil
}

// RemoveImageLinks pulls ids from the owner's (or one showcase's) imagesCL
// and marks them detached.
func (r *Repository) RemoveImageLinks(ctx context.Context, ownerID string, ids ImageIDs, opts ImageLinkOptions) (bson.M, error) {
	filter, field, err := r.imageTarget(ownerID, ids, opts)
	if err != nil {
		return nil, err
	}
	vals := ids.values()
	doc, err := r.update(ctx, filter, bson.M{"$pull": bson.M{field: bson.M{"$in": bson.A(vals)}}})
	if err != nil {
		return nil, err
	}
	r.detach(vals)
	return doc, nil
}

func (r *Repository) imageTarget(ownerID string, ids ImageIDs, opts ImageLinkOptions) (bson.M, string, error) {
	if !r.schema.hasImages() {
		return nil, "", apperr.Validation(r.schema.Resource + " has no image links")
	}
	if ownerID == "" || len(ids) == 0 {
		return nil, "", apperr.Validation("identifier or image ids missing")
	}
	filter := bson.M{FieldID: query.IDValue(ownerID)}
	if opts.ShowcaseID == "" {
		return filter, FieldImages, nil
	}
	if err := r.requireShowcases(); err != nil {
		return nil, "", err
	}
	filter[FieldShowcases+"._id"] = query.IDValue(opts.ShowcaseID)
	return filter, FieldShowcases + ".$." + FieldImages, nil
}

// ListImages returns the expanded top-level imagesCL of a document.
func (r *Repository) ListImages(ctx context.Context, ownerID string) ([]interface{}, error) {
	if !r.schema.hasImages() {
		return nil, apperr.Validation(r.schema.Resource + " has no image links")
	}
	if ownerID == "" {
		return nil, apperr.Validation("identifier missing")
	}
	doc, err := r.col.FindOne(ctx, bson.M{FieldID: query.IDValue(ownerID)}, bson.M{FieldImages: 1})
	if err != nil {
		return nil, apperr.Store(err)
	}
	if doc == nil {
		return nil, r.notFound()
	}
	if r.expander != nil {
		if err := r.expander.Expand(ctx, []bson.M{doc}, FieldImages); err != nil {
			return nil, apperr.Store(err)
		}
	}
	images, _ := store.AsArray(doc[FieldImages])
	if images == nil {
		images = []interface{}{}
	}
	return images, nil
}

// FindImage returns one entry of the top-level imagesCL.
func (r *Repository) FindImage(ctx context.Context, ownerID, imageID string) (bson.M, error) {
	if imageID == "" {
		return nil, apperr.Validation("image identifier missing")
	}
	images, err := r.ListImages(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		if rec, ok := store.AsDoc(img); ok {
			if query.IDString(rec[FieldID]) == imageID {
				return rec, nil
			}
			continue
		}
		if query.IDString(img) == imageID {
			return bson.M{FieldID: img}, nil
		}
	}
	return nil, apperr.NotFound("image not found")
}
