package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/apperr"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/store/storetest"
	"go.mongodb.org/mongo-driver/bson"
)

func TestImageIDsAcceptScalarOrArray(t *testing.T) {
	var body struct {
		ImagesCL ImageIDs `json:"imagesCL"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"imagesCL":"f1"}`), &body))
	require.Equal(t, ImageIDs{"f1"}, body.ImagesCL)

	require.NoError(t, json.Unmarshal([]byte(`{"imagesCL":["f1","f2"]}`), &body))
	require.Equal(t, ImageIDs{"f1", "f2"}, body.ImagesCL)

	require.NoError(t, json.Unmarshal([]byte(`{"imagesCL":""}`), &body))
	require.Empty(t, body.ImagesCL)

	require.Error(t, json.Unmarshal([]byte(`{"imagesCL":{"id":"f1"}}`), &body))
}

func TestAddImageLinksTopLevel(t *testing.T) {
	repo, col, refs := newRepo(CustomerStory)
	col.FindOneAndUpdateFn = func(_, _ interface{}) (bson.M, error) { return bson.M{"_id": "cs1"}, nil }

	_, err := repo.AddImageLinks(context.Background(), "cs1", ImageIDs{"f1"}, ImageLinkOptions{})
	require.NoError(t, err)

	call := col.Calls("find_one_and_update")[0]
	require.Equal(t, bson.M{"_id": "cs1"}, call.Filter)
	require.Equal(t, bson.M{"$push": bson.M{"imagesCL": bson.M{"$each": bson.A{"f1"}}}}, call.Update)
	require.Equal(t, [][]interface{}{{"f1"}}, refs.attached)
}

func TestAddImageLinksToShowcase(t *testing.T) {
	repo, col, refs := newRepo(Service)
	col.FindOneAndUpdateFn = func(_, _ interface{}) (bson.M, error) { return bson.M{"_id": "s1"}, nil }

	_, err := repo.AddImageLinks(context.Background(), "s1", ImageIDs{"f1", "f2"}, ImageLinkOptions{ShowcaseID: "sc1"})
	require.NoError(t, err)

	call := col.Calls("find_one_and_update")[0]
	require.Equal(t, bson.M{"_id": "s1", "showcases._id": "sc1"}, call.Filter)
	require.Equal(t, bson.M{"$push": bson.M{"showcases.$.imagesCL": bson.M{"$each": bson.A{"f1", "f2"}}}}, call.Update)
	require.Equal(t, [][]interface{}{{"f1", "f2"}}, refs.attached)
}

func TestRemoveImageLinks(t *testing.T) {
	repo, col, refs := newRepo(Service)
	col.FindOneAndUpdateFn = func(_, _ interface{}) (bson.M, error) { return bson.M{"_id": "s1"}, nil }

	_, err := repo.RemoveImageLinks(context.Background(), "s1", ImageIDs{"f2"}, ImageLinkOptions{ShowcaseID: "sc1"})
	require.NoError(t, err)
	require.Equal(t, bson.M{"$pull": bson.M{"showcases.$.imagesCL": bson.M{"$in": bson.A{"f2"}}}},
		col.Calls("find_one_and_update")[0].Update)
	require.Equal(t, [][]interface{}{{"f2"}}, refs.detached)
}

func TestImageLinksOnMissingOwnerSkipTracker(t *testing.T) {
	repo, _, refs := newRepo(Service)
	_, err := repo.RemoveImageLinks(context.Background(), "s1", ImageIDs{"f2"}, ImageLinkOptions{})
	require.True(t, apperr.Is(err, apperr.KindNotFound))
	require.Empty(t, refs.detached)
}

func TestImageLinksValidation(t *testing.T) {
	reviews, _, _ := newRepo(Review)
	_, err := reviews.AddImageLinks(context.Background(), "r1", ImageIDs{"f1"}, ImageLinkOptions{})
	require.True(t, apperr.Is(err, apperr.KindValidation))

	stories, col, _ := newRepo(CustomerStory)
	_, err = stories.AddImageLinks(context.Background(), "cs1", ImageIDs{"f1"}, ImageLinkOptions{ShowcaseID: "sc1"})
	require.True(t, apperr.Is(err, apperr.KindValidation), "stories have no showcases")

	_, err = stories.AddImageLinks(context.Background(), "cs1", nil, ImageLinkOptions{})
	require.True(t, apperr.Is(err, apperr.KindValidation))
	require.Empty(t, col.Calls())
}

func TestListAndFindImages(t *testing.T) {
	col := storetest.New("customerstories")
	col.FindOneFn = func(_ interface{}, _ bson.M) (bson.M, error) {
		return bson.M{"_id": "cs1", "imagesCL": bson.A{"f1", "f2"}}, nil
	}
	exp := &recordExpander{}
	repo := New(CustomerStory, col, WithExpander(exp))

	images, err := repo.ListImages(context.Background(), "cs1")
	require.NoError(t, err)
	require.Len(t, images, 2)
	require.Equal(t, bson.M{"imagesCL": 1}, col.Calls("find_one")[0].Projection)

	img, err := repo.FindImage(context.Background(), "cs1", "f2")
	require.NoError(t, err)
	require.Equal(t, bson.M{"_id": "f2", "urls": bson.A{"https://cdn/f2"}}, img)

	_, err = repo.FindImage(context.Background(), "cs1", "f9")
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestListImagesMissingOwner(t *testing.T) {
	repo, _, _ := newRepo(CustomerStory)
	_, err := repo.ListImages(context.Background(), "cs1")
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}

// recordExpander swaps raw ids for {_id, urls} records.
type recordExpander struct{}

func (recordExpander) Expand(_ context.Context, docs []bson.M, paths ...string) error {
	for _, d := range docs {
		raw, ok := d["imagesCL"].(bson.A)
		if !ok {
			continue
		}
		out := bson.A{}
		for _, id := range raw {
			out = append(out, bson.M{"_id": id, "urls": bson.A{"https://cdn/" + id.(string)}})
		}
		d["imagesCL"] = out
	}
	return nil
}
