package store

import "go.mongodb.org/mongo-driver/bson"

// AsDoc returns v as a map when it is an embedded document. Maps are
// returned as-is so writes reach the caller's value; a bson.D is copied.
func AsDoc(v interface{}) (bson.M, bool) {
	switch d := v.(type) {
	case bson.M:
		return d, d != nil
	case map[string]interface{}:
		return bson.M(d), d != nil
	case bson.D:
		m := make(bson.M, len(d))
		for _, e := range d {
			m[e.Key] = e.Value
		}
		return m, true
	}
	return nil, false
}

// AsArray returns v as a generic slice when it is an array value.
func AsArray(v interface{}) ([]interface{}, bool) {
	switch a := v.(type) {
	case bson.A:
		return a, true
	case []interface{}:
		return a, true
	case []string:
		out := make([]interface{}, len(a))
		for i, s := range a {
			out[i] = s
		}
		return out, true
	case []bson.M:
		out := make([]interface{}, len(a))
		for i, m := range a {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}
