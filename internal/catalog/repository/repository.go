// Package repository implements the catalog resource operations (list, get,
// create, replace, patch, remove) plus the embedded showcase and image-link
// editors on top of a store.Collection.
//
// One Repository type serves every resource; a Schema supplies the
// per-resource differences.
package repository

import (
	"context"

	"github.com/vendorhub/vendorhub/backend/go-services/internal/apperr"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/query"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/store"
	"go.mongodb.org/mongo-driver/bson"
)

// FileRefs receives file reference ids after a successful write. Calls must
// not block; outcomes are not reported back.
type FileRefs interface {
	Attach(ids []interface{})
	Detach(ids []interface{})
}

// Expander rewrites file reference ids into their stored records.
type Expander interface {
	Expand(ctx context.Context, docs []bson.M, paths ...string) error
}

type FindManyOptions struct {
	Select string
	// Page defaults to the first page of DefaultPageSize when zero.
	Page query.Page
}

type FindOneOptions struct {
	Select string
}

// MutationOptions carries request metadata stamped onto nested writes.
type MutationOptions struct {
	LastModifiedBy string
}

type Repository struct {
	schema   Schema
	col      store.Collection
	files    FileRefs
	expander Expander
}

type Option func(*Repository)

// WithFileRefs sets the receiver of attach/detach notifications.
func WithFileRefs(f FileRefs) Option { return func(r *Repository) { r.files = f } }

// WithExpander enables file reference expansion on returned documents.
func WithExpander(e Expander) Option { return func(r *Repository) { r.expander = e } }

func New(schema Schema, col store.Collection, opts ...Option) *Repository {
	r := &Repository{schema: schema, col: col}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Repository) Schema() Schema { return r.schema }

// FindMany returns one page of documents matching filter together with the
// pagination metadata computed from a count over the same filter.
func (r *Repository) FindMany(ctx context.Context, filter bson.M, opts FindManyOptions) (*query.Envelope, error) {
	if filter == nil {
		filter = bson.M{}
	}
	page := opts.Page
	if page == (query.Page{}) {
		page = query.DefaultPage()
	}

	items, err := r.col.Find(ctx, filter, store.FindOptions{
		Projection: query.Projection(opts.Select),
		Skip:       page.Skip(),
		Limit:      page.Limit(),
	})
	if err != nil {
		return nil, apperr.Store(err)
	}
	if err := r.expand(ctx, items...); err != nil {
		return nil, err
	}
	count, err := r.col.Count(ctx, filter)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &query.Envelope{Items: items, Pagination: query.Paginate(page, count)}, nil
}

// FindOne looks a document up by primary id, short id or slug. A miss is
// reported as a nil document, not an error.
func (r *Repository) FindOne(ctx context.Context, identifier string, opts FindOneOptions) (bson.M, error) {
	if identifier == "" {
		return nil, apperr.Validation("identifier missing")
	}
	doc, err := r.col.FindOne(ctx, query.BuildMatchQuery(identifier), query.Projection(opts.Select))
	if err != nil {
		return nil, apperr.Store(err)
	}
	if doc == nil {
		return nil, nil
	}
	if err := r.expand(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Create stores doc and then marks every file it references as attached.
func (r *Repository) Create(ctx context.Context, doc bson.M) (bson.M, error) {
	if doc == nil {
		return nil, apperr.Validation(r.schema.Resource + " payload missing")
	}
	r.schema.prepareNew(doc)
	images := r.schema.imageIDs(doc)

	saved, err := r.col.Insert(ctx, doc)
	if err != nil {
		return nil, apperr.Store(err)
	}
	r.attach(images)
	return saved, nil
}

// Replace overwrites every writable field of the stored document with the
// values in doc. Protected fields in doc are ignored.
func (r *Repository) Replace(ctx context.Context, doc bson.M) (bson.M, error) {
	id, ok := doc[FieldID]
	if !ok || id == nil || id == "" {
		return nil, apperr.Validation("_id property is missing from the " + r.schema.Resource)
	}
	return r.setFields(ctx, castID(id), updateSet(doc, "", r.writable))
}

// Patch applies a bag of property paths to the document with the given id.
// Protected paths are dropped; when nothing is left the current document is
// returned unchanged.
func (r *Repository) Patch(ctx context.Context, id string, props bson.M) (bson.M, error) {
	if id == "" {
		return nil, apperr.Validation("identifier missing")
	}
	return r.setFields(ctx, query.IDValue(id), updateSet(props, "", r.writable))
}

// Remove deletes the document with the given id.
func (r *Repository) Remove(ctx context.Context, id string) error {
	if id == "" {
		return apperr.Validation("identifier missing")
	}
	n, err := r.col.DeleteOne(ctx, bson.M{FieldID: query.IDValue(id)})
	if err != nil {
		return apperr.Store(err)
	}
	if n == 0 {
		return r.notFound()
	}
	return nil
}

func (r *Repository) writable(key string) bool { return !r.schema.isProtected(key) }

func (r *Repository) setFields(ctx context.Context, id interface{}, set bson.M) (bson.M, error) {
	filter := bson.M{FieldID: id}
	if len(set) == 0 {
		return r.current(ctx, filter)
	}
	return r.update(ctx, filter, bson.M{"$set": set})
}

// update applies update to the document matched by filter and returns the
// expanded result.
func (r *Repository) update(ctx context.Context, filter bson.M, update interface{}) (bson.M, error) {
	doc, err := r.col.FindOneAndUpdate(ctx, filter, update)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if doc == nil {
		return nil, r.notFound()
	}
	if err := r.expand(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *Repository) current(ctx context.Context, filter bson.M) (bson.M, error) {
	doc, err := r.col.FindOne(ctx, filter, nil)
	if err != nil {
		return nil, apperr.Store(err)
	}
	if doc == nil {
		return nil, r.notFound()
	}
	if err := r.expand(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *Repository) expand(ctx context.Context, docs ...bson.M) error {
	if r.expander == nil || !r.schema.hasImages() || len(docs) == 0 {
		return nil
	}
	return apperr.Store(r.expander.Expand(ctx, docs, r.schema.ImagePaths...))
}

func (r *Repository) attach(ids []interface{}) {
	if r.files != nil && len(ids) > 0 {
		r.files.Attach(ids)
	}
}

func (r *Repository) detach(ids []interface{}) {
	if r.files != nil && len(ids) > 0 {
		r.files.Detach(ids)
	}
}

func (r *Repository) notFound() error {
	return apperr.NotFound(r.schema.Resource + " not found")
}
