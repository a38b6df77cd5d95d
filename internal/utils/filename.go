package utils

import (
	"fmt"
	"regexp"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFileName replaces every character outside [A-Za-z0-9._-] with an
// underscore so the result is safe as an object storage key segment.
func SanitizeFileName(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// ObjectKey builds the storage key for an upload: the base path, the
// upload timestamp in milliseconds and the sanitized file name. Re-uploads
// of the same logical name get distinct keys because the timestamp moves.
func ObjectKey(basePath string, uploadMillis int64, name string) string {
	return fmt.Sprintf("%s/%d_%s", basePath, uploadMillis, SanitizeFileName(name))
}
