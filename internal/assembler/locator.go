package assembler

import (
	"fmt"
	"strings"

	"tenantli-inspect/internal/domain"
)

// PlaceholderPhotoPath is returned when a record carries no usable identity.
// Served from the API origin so the viewer never mixes origins.
const PlaceholderPhotoPath = "/static/placeholder-room.png"

// urlResolver is one step of the photo URL resolution policy.
// It reports the resolved URL and whether the step matched.
type urlResolver struct {
	name    string
	resolve func(rec domain.PhotoRecord, apiBase string) (string, bool)
}

// photoURLPolicy is the ordered resolution policy for photo records.
// Records may carry several identity fields at once (legacy vs. new backend
// versions); the order reflects decreasing reliability of each field across
// schema versions and is a compatibility contract with already-stored
// records. Do not reorder.
var photoURLPolicy = []urlResolver{
	{name: "url", resolve: func(rec domain.PhotoRecord, apiBase string) (string, bool) {
		if rec.URL == "" {
			return "", false
		}
		return resolvePathLike(rec.URL, apiBase), true
	}},
	{name: "file_path", resolve: func(rec domain.PhotoRecord, apiBase string) (string, bool) {
		if rec.FilePath == "" {
			return "", false
		}
		return apiBase + "/uploads/" + rec.FilePath, true
	}},
	{name: "numeric_id", resolve: func(rec domain.PhotoRecord, apiBase string) (string, bool) {
		if rec.ID <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s/api/photos/%d/public", apiBase, rec.ID), true
	}},
	{name: "path", resolve: func(rec domain.PhotoRecord, apiBase string) (string, bool) {
		if rec.Path == "" {
			return "", false
		}
		return apiBase + "/" + strings.TrimPrefix(rec.Path, "/"), true
	}},
	{name: "file_name", resolve: func(rec domain.PhotoRecord, apiBase string) (string, bool) {
		if rec.FileName == "" {
			return "", false
		}
		return apiBase + "/uploads/" + rec.FileName, true
	}},
	{name: "raw_string", resolve: func(rec domain.PhotoRecord, apiBase string) (string, bool) {
		if rec.Raw == "" {
			return "", false
		}
		return resolvePathLike(rec.Raw, apiBase), true
	}},
}

// ResolvePhotoURL resolves any photo record shape to a fetchable URL.
// Total function: never fails, falls back to the placeholder resource.
func ResolvePhotoURL(rec domain.PhotoRecord, apiBase string) string {
	for _, step := range photoURLPolicy {
		if url, ok := step.resolve(rec, apiBase); ok {
			return url
		}
	}
	return apiBase + PlaceholderPhotoPath
}

// resolvePathLike applies the url/raw-string rules:
// "/uploads..." gets the API base prefixed, absolute http(s) URLs pass
// through unchanged, anything else is a relative path joined to the base.
func resolvePathLike(v, apiBase string) string {
	switch {
	case strings.HasPrefix(v, "/uploads"):
		return apiBase + v
	case strings.HasPrefix(v, "http"):
		return v
	default:
		return apiBase + "/" + strings.TrimPrefix(v, "/")
	}
}
