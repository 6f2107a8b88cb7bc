package utils

import (
	"mime"
	"path/filepath"
	"strings"
)

// DetectContentType resolves a best-effort MIME type for a file name.
// Used when the drive service reports no mimeType for an item.
func DetectContentType(name string) string {
	if isTextLike(name) {
		return "text/plain; charset=utf-8"
	}
	if mimeType := mime.TypeByExtension(filepath.Ext(name)); mimeType != "" {
		return mimeType
	}
	return "application/octet-stream"
}

func isTextLike(name string) bool {
	return strings.HasSuffix(name, ".yaml") ||
		strings.HasSuffix(name, ".yml") ||
		strings.HasSuffix(name, ".toml") ||
		strings.HasSuffix(name, ".md") ||
		strings.HasSuffix(name, ".txt")
}
