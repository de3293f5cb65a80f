package domain

import (
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Slugify converts free text into a URL-safe handle: lower-cased, runs of
// non [a-z0-9] collapsed to single hyphens, edge hyphens trimmed.
func Slugify(s string) string {
	return slug.Make(s)
}

// LooksLikeID reports whether a lookup value is id-shaped rather than a
// human handle. Id-shaped values are tried as surrogate ids first, with
// fallback to handle lookup.
func LooksLikeID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
