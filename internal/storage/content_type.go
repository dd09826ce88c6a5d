package storage

import (
	"mime"
	"path/filepath"
	"strings"
)

// DetectContentType determines the MIME type of a stored object.
//
// Detection priority:
// 1. If providedType is non-empty, use it directly
// 2. JSON documents are always "application/json"
// 3. Try the extension using mime.TypeByExtension
// 4. Fall back to "application/octet-stream"
func DetectContentType(providedType, key string) string {
	if providedType != "" {
		return providedType
	}

	ext := strings.ToLower(filepath.Ext(key))
	if ext == ".json" {
		return "application/json"
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}

	return "application/octet-stream"
}

// IsJSON reports whether a content type is JSON, ignoring parameters.
func IsJSON(contentType string) bool {
	switch baseType(contentType) {
	case "application/json", "text/json":
		return true
	}
	return false
}

// IsImage returns true if the content type is any image format.
func IsImage(contentType string) bool {
	return strings.HasPrefix(baseType(contentType), "image/")
}

func baseType(contentType string) string {
	b := strings.Split(contentType, ";")[0]
	return strings.TrimSpace(strings.ToLower(b))
}
