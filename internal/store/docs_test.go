package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestAsDoc(t *testing.T) {
	m := bson.M{"a": 1}
	got, ok := AsDoc(m)
	require.True(t, ok)
	got["b"] = 2
	require.Equal(t, 2, m["b"], "maps are shared, not copied")

	plain := map[string]interface{}{"a": 1}
	got, ok = AsDoc(plain)
	require.True(t, ok)
	got["c"] = 3
	require.Equal(t, 3, plain["c"])

	got, ok = AsDoc(bson.D{{Key: "x", Value: "y"}})
	require.True(t, ok)
	require.Equal(t, bson.M{"x": "y"}, got)

	_, ok = AsDoc("nope")
	require.False(t, ok)
	_, ok = AsDoc(bson.M(nil))
	require.False(t, ok)
}

func TestAsArray(t *testing.T) {
	a, ok := AsArray(bson.A{"f1", "f2"})
	require.True(t, ok)
	require.Equal(t, []interface{}{"f1", "f2"}, a)

	a, ok = AsArray([]string{"f3"})
	require.True(t, ok)
	require.Equal(t, []interface{}{"f3"}, a)

	_, ok = AsArray(bson.M{})
	require.False(t, ok)
}
