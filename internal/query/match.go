package query

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alternate lookup fields used when an identifier is not a primary key.
const (
	SlugField    = "urlStr"
	ShortIDField = "shortId"
)

// BuildMatchQuery builds the lookup predicate for a primary id, short id or
// slug. Only an identifier whose canonical ObjectID hex form equals the input
// exactly is treated as a primary key; everything else, including malformed
// ids, becomes an $or over the slug and short id fields. It never fails.
func BuildMatchQuery(identifier string) bson.M {
	if oid, ok := ParseObjectID(identifier); ok {
		return bson.M{"_id": oid}
	}
	return bson.M{"$or": bson.A{
		bson.M{SlugField: identifier},
		bson.M{ShortIDField: identifier},
	}}
}

// ParseObjectID parses a canonical (lowercase, 24 hex) ObjectID string.
func ParseObjectID(s string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil || oid.Hex() != s {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// IDValue returns the ObjectID for a canonical id string and the string
// itself otherwise, so lookups on non-ObjectID keys still run and simply
// match nothing.
func IDValue(s string) interface{} {
	if oid, ok := ParseObjectID(s); ok {
		return oid
	}
	return s
}

// IDString renders a stored id for comparison with a path parameter.
func IDString(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}
