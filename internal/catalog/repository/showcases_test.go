package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/apperr"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func serviceWithShowcases(id interface{}) bson.M {
	return bson.M{
		"_id": id,
		"showcases": bson.A{
			bson.M{"_id": "sc1", "title": "Wedding", "imagesCL": bson.A{"f3"}},
			bson.M{"_id": "sc2", "title": "Birthday", "imagesCL": bson.A{"f4", "f5"}},
		},
	}
}

func TestListShowcasesProjection(t *testing.T) {
	repo, col, _ := newRepo(Service)
	col.FindOneFn = func(_ interface{}, _ bson.M) (bson.M, error) { return serviceWithShowcases("s1"), nil }

	list, err := repo.ListShowcases(context.Background(), "catering-Hk3x9", ShowcaseQuery{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Birthday", list[1]["title"])

	_, err = repo.ListShowcases(context.Background(), "catering-Hk3x9", ShowcaseQuery{Select: "name,urlStr"})
	require.NoError(t, err)

	calls := col.Calls("find_one")
	require.Equal(t, query.BuildMatchQuery("catering-Hk3x9"), calls[0].Filter)
	require.Equal(t, bson.M{"showcases": 1}, calls[0].Projection)
	require.Equal(t, bson.M{"name": 1, "urlStr": 1, "showcases": 1}, calls[1].Projection)
}

func TestListShowcasesNotFound(t *testing.T) {
	repo, col, _ := newRepo(Service)

	_, err := repo.ListShowcases(context.Background(), "missing", ShowcaseQuery{})
	require.True(t, apperr.Is(err, apperr.KindNotFound))

	col.FindOneFn = func(_ interface{}, _ bson.M) (bson.M, error) { return bson.M{"_id": "s1", "showcases": "broken"}, nil }
	_, err = repo.ListShowcases(context.Background(), "s1", ShowcaseQuery{})
	require.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = repo.ListShowcases(context.Background(), "", ShowcaseQuery{})
	require.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestShowcasesRequireServiceSchema(t *testing.T) {
	repo, col, _ := newRepo(CustomerStory)
	_, err := repo.ListShowcases(context.Background(), "cs1", ShowcaseQuery{})
	require.True(t, apperr.Is(err, apperr.KindValidation))
	require.Empty(t, col.Calls())
}

func TestFindShowcase(t *testing.T) {
	repo, col, _ := newRepo(Service)
	col.FindOneFn = func(_ interface{}, _ bson.M) (bson.M, error) { return serviceWithShowcases("s1"), nil }

	sc, err := repo.FindShowcase(context.Background(), "s1", "sc2", ShowcaseQuery{})
	require.NoError(t, err)
	require.Equal(t, "Birthday", sc["title"])

	sc, err = repo.FindShowcase(context.Background(), "s1", "nope", ShowcaseQuery{})
	require.NoError(t, err)
	require.Equal(t, bson.M{}, sc, "an unknown showcase is an empty document")
}

func TestFindShowcaseMatchesObjectIDs(t *testing.T) {
	repo, col, _ := newRepo(Service)
	scID := primitive.NewObjectID()
	col.FindOneFn = func(_ interface{}, _ bson.M) (bson.M, error) {
		return bson.M{"_id": "s1", "showcases": bson.A{bson.D{{Key: "_id", Value: scID}, {Key: "title", Value: "Gala"}}}}, nil
	}

	sc, err := repo.FindShowcase(context.Background(), "s1", scID.Hex(), ShowcaseQuery{})
	require.NoError(t, err)
	require.Equal(t, "Gala", sc["title"])
}

func TestAppendShowcase(t *testing.T) {
	repo, col, refs := newRepo(Service)
	sid := primitive.NewObjectID()
	col.FindOneAndUpdateFn = func(_, _ interface{}) (bson.M, error) { return bson.M{"_id": sid}, nil }

	_, err := repo.AppendShowcase(context.Background(), sid.Hex(),
		bson.M{"title": "Gala", "imagesCL": []interface{}{"f7"}},
		MutationOptions{LastModifiedBy: "user-42"})
	require.NoError(t, err)

	call := col.Calls("find_one_and_update")[0]
	require.Equal(t, bson.M{"_id": sid}, call.Filter)
	update := call.Update.(bson.M)
	pushed := update["$push"].(bson.M)["showcases"].(bson.M)
	require.Equal(t, "Gala", pushed["title"])
	_, ok := pushed["_id"].(primitive.ObjectID)
	require.True(t, ok)
	require.Equal(t, bson.M{"lastModifiedBy": "user-42"}, update["$set"])
	require.Equal(t, [][]interface{}{{"f7"}}, refs.attached)
}

func TestAppendShowcaseMissingServiceSkipsTracker(t *testing.T) {
	repo, col, refs := newRepo(Service)

	_, err := repo.AppendShowcase(context.Background(), "s1", bson.M{"imagesCL": []interface{}{"f7"}}, MutationOptions{})
	require.True(t, apperr.Is(err, apperr.KindNotFound))
	require.Empty(t, refs.attached)
	require.NotContains(t, col.Calls()[0].Update.(bson.M), "$set")
}

func TestReplaceShowcaseKeepsStoredImages(t *testing.T) {
	repo, col, refs := newRepo(Service)
	col.FindOneAndUpdateFn = func(_, _ interface{}) (bson.M, error) { return serviceWithShowcases("s1"), nil }

	_, err := repo.ReplaceShowcase(context.Background(), "s1",
		bson.M{"_id": "sc1", "title": "Wedding 2024", "imagesCL": []interface{}{"f9"}},
		MutationOptions{LastModifiedBy: "user-42"})
	require.NoError(t, err)
	require.Empty(t, refs.attached)

	call := col.Calls("find_one_and_update")[0]
	require.Equal(t, bson.M{"_id": "s1", "showcases._id": "sc1"}, call.Filter)

	pipeline, ok := call.Update.(bson.A)
	require.True(t, ok, "a single pipeline update")
	require.Len(t, pipeline, 1)
	stage := pipeline[0].(bson.M)["$set"].(bson.M)
	require.Equal(t, bson.M{"$literal": "user-42"}, stage["lastModifiedBy"])

	mapped := stage["showcases"].(bson.M)["$map"].(bson.M)
	cond := mapped["in"].(bson.M)["$cond"].(bson.A)
	require.Equal(t, bson.M{"$eq": bson.A{"$$s._id", bson.M{"$literal": "sc1"}}}, cond[0])
	merge := cond[1].(bson.M)["$mergeObjects"].(bson.A)
	require.Equal(t, bson.M{"$literal": bson.M{"_id": "sc1", "title": "Wedding 2024"}}, merge[0])
	require.Equal(t, bson.M{"imagesCL": "$$s.imagesCL"}, merge[1])
	require.Equal(t, "$$s", cond[2])
}

func TestReplaceShowcaseRequiresShowcaseID(t *testing.T) {
	repo, col, _ := newRepo(Service)
	_, err := repo.ReplaceShowcase(context.Background(), "s1", bson.M{"title": "x"}, MutationOptions{})
	require.True(t, apperr.Is(err, apperr.KindValidation))
	require.Empty(t, col.Calls())
}

func TestPatchShowcaseDropsLockedKeys(t *testing.T) {
	repo, col, _ := newRepo(Service)
	col.FindOneAndUpdateFn = func(_, _ interface{}) (bson.M, error) { return serviceWithShowcases("s1"), nil }

	_, err := repo.PatchShowcase(context.Background(), "s1", "sc1", bson.M{
		"title":    "Renamed",
		"imagesCL": []interface{}{"f1"},
		"filters":  bson.M{"city": "Pune"},
		"_id":      "sc9",
	}, MutationOptions{LastModifiedBy: "user-42"})
	require.NoError(t, err)

	call := col.Calls("find_one_and_update")[0]
	require.Equal(t, bson.M{"_id": "s1", "showcases._id": "sc1"}, call.Filter)
	require.Equal(t, bson.M{"$set": bson.M{
		"showcases.$.title": "Renamed",
		"lastModifiedBy":    "user-42",
	}}, call.Update)
}

func TestPatchShowcaseWithOnlyLockedKeysReturnsCurrent(t *testing.T) {
	repo, col, _ := newRepo(Service)
	col.FindOneFn = func(_ interface{}, _ bson.M) (bson.M, error) { return serviceWithShowcases("s1"), nil }

	doc, err := repo.PatchShowcase(context.Background(), "s1", "sc1",
		bson.M{"imagesCL": []interface{}{"f1"}, "filters": bson.M{}}, MutationOptions{LastModifiedBy: "user-42"})
	require.NoError(t, err)
	require.Equal(t, "s1", doc["_id"])
	require.Empty(t, col.Calls("find_one_and_update"))
}

func TestRemoveShowcaseDetachesAfterSave(t *testing.T) {
	repo, col, refs := newRepo(Service)
	col.FindOneFn = func(_ interface{}, _ bson.M) (bson.M, error) { return serviceWithShowcases("s1"), nil }

	require.NoError(t, repo.RemoveShowcase(context.Background(), "s1", "sc1"))

	require.Equal(t, bson.M{"showcases": 1}, col.Calls("find_one")[0].Projection)
	save := col.Calls("update_one")
	require.Len(t, save, 1)
	require.Equal(t, bson.M{"_id": "s1"}, save[0].Filter)
	remaining := save[0].Update.(bson.M)["$set"].(bson.M)["showcases"].(bson.A)
	require.Len(t, remaining, 1)
	require.Equal(t, "sc2", remaining[0].(bson.M)["_id"])

	require.Equal(t, [][]interface{}{{"f3"}}, refs.detached)
	require.Empty(t, refs.attached)
}

func TestRemoveShowcaseFailedSaveSkipsTracker(t *testing.T) {
	repo, col, refs := newRepo(Service)
	col.FindOneFn = func(_ interface{}, _ bson.M) (bson.M, error) { return serviceWithShowcases("s1"), nil }
	col.UpdateOneFn = func(_, _ interface{}) (int64, error) { return 0, errors.New("write conflict") }

	err := repo.RemoveShowcase(context.Background(), "s1", "sc1")
	require.True(t, apperr.Is(err, apperr.KindStore))
	require.Empty(t, refs.detached)
}

func TestRemoveShowcaseMissing(t *testing.T) {
	repo, col, refs := newRepo(Service)

	require.True(t, apperr.Is(repo.RemoveShowcase(context.Background(), "s1", "sc1"), apperr.KindNotFound))

	col.FindOneFn = func(_ interface{}, _ bson.M) (bson.M, error) { return serviceWithShowcases("s1"), nil }
	require.True(t, apperr.Is(repo.RemoveShowcase(context.Background(), "s1", "sc404"), apperr.KindNotFound))
	require.Empty(t, col.Calls("update_one"))
	require.Empty(t, refs.detached)
}
