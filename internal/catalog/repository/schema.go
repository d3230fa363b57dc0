package repository

// Field names shared by the catalog resources.
const (
	FieldID        = "_id"
	FieldImages    = "imagesCL"
	FieldShowcases = "showcases"
	FieldFilters   = "filters"
	FieldModBy     = "lastModifiedBy"
	FieldShow      = "show"
)

// Schema describes how one resource collection is stored and which of its
// fields the generic operations may not touch.
type Schema struct {
	// Resource is the human name used in error messages.
	Resource   string
	Collection string
	// Protected fields are stripped from replace and patch payloads. Nested
	// paths under a protected field are stripped too.
	Protected []string
	// ImagePaths lists where file reference ids live, in document order.
	ImagePaths []string
	// Showcases enables the embedded showcase editor.
	Showcases bool
}

var (
	Review = Schema{
		Resource:   "review",
		Collection: "reviews",
	}
	Service = Schema{
		Resource:   "service",
		Collection: "services",
		Protected:  []string{FieldImages, FieldShowcases},
		ImagePaths: []string{FieldImages, FieldShowcases + "." + FieldImages},
		Showcases:  true,
	}
	CustomerStory = Schema{
		Resource:   "customer story",
		Collection: "customerstories",
		Protected:  []string{FieldImages},
		ImagePaths: []string{FieldImages},
	}
)

func (s Schema) hasImages() bool { return len(s.ImagePaths) > 0 }

func (s Schema) isProtected(key string) bool {
	if key == FieldID {
		return true
	}
	return matchesAny(key, s.Protected)
}

// matchesAny reports whether key names one of fields or a path below it.
func matchesAny(key string, fields []string) bool {
	for _, f := range fields {
		if key == f || (len(key) > len(f) && key[:len(f)] == f && key[len(f)] == '.') {
			return true
		}
	}
	return false
}
