package query

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// NormalizeSelection turns a comma and/or space separated field list into the
// canonical space separated form ("name,phone abc" -> "name phone abc").
// An empty result means "all fields". Field names are not validated.
func NormalizeSelection(input string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(input, ",", " ")), " ")
}

// Projection converts a selection into a store projection. A leading "-"
// excludes the field. Returns nil for an empty selection.
func Projection(selection string) bson.M {
	fields := strings.Fields(NormalizeSelection(selection))
	if len(fields) == 0 {
		return nil
	}
	proj := bson.M{}
	for _, f := range fields {
		if strings.HasPrefix(f, "-") {
			if name := strings.TrimPrefix(f, "-"); name != "" {
				proj[name] = 0
			}
			continue
		}
		proj[f] = 1
	}
	return proj
}

// IsExclusive reports whether the selection only removes fields.
func IsExclusive(selection string) bool {
	fields := strings.Fields(NormalizeSelection(selection))
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !strings.HasPrefix(f, "-") {
			return false
		}
	}
	return true
}

// WithField appends field to an inclusive selection. Empty and exclusive
// selections already return every non-excluded field and are returned as is.
func WithField(selection, field string) string {
	sel := NormalizeSelection(selection)
	if sel == "" || IsExclusive(sel) {
		return sel
	}
	for _, f := range strings.Fields(sel) {
		if f == field {
			return sel
		}
	}
	return sel + " " + field
}
