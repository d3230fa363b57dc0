package filemap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/store/storetest"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStoreTrackerBulkSetStatus(t *testing.T) {
	col := storetest.New("filemaps")
	tr := NewStoreTracker(col)

	require.NoError(t, tr.BulkSetStatus(context.Background(), []interface{}{"f1", "f2"}, Attached))

	calls := col.Calls("update_many")
	require.Len(t, calls, 1)
	require.Equal(t, bson.M{"_id": bson.M{"$in": bson.A{"f1", "f2"}}}, calls[0].Filter)
	require.Equal(t, bson.M{"$set": bson.M{"mappedStatus": true, "markedAsDelete": false}}, calls[0].Update)
}

func TestStoreTrackerDetachFlipsBothFlags(t *testing.T) {
	col := storetest.New("filemaps")
	require.NoError(t, NewStoreTracker(col).BulkSetStatus(context.Background(), []interface{}{"f3"}, Detached))
	require.Equal(t, bson.M{"$set": bson.M{"mappedStatus": false, "markedAsDelete": true}}, col.Calls()[0].Update)
}

func TestStoreTrackerSkipsEmptyBatch(t *testing.T) {
	col := storetest.New("filemaps")
	require.NoError(t, NewStoreTracker(col).BulkSetStatus(context.Background(), nil, Attached))
	require.Empty(t, col.Calls())
}

func TestStoreTrackerWrapsStoreError(t *testing.T) {
	col := storetest.New("filemaps")
	boom := errors.New("not primary")
	col.UpdateManyFn = func(_, _ interface{}) (int64, error) { return 0, boom }

	err := NewStoreTracker(col).BulkSetStatus(context.Background(), []interface{}{"f1"}, Detached)
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "detached")
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "attached", Attached.String())
	require.Equal(t, "detached", Detached.String())
	require.Equal(t, "mapped=true,deleted=true", Status{true, true}.String())
}
