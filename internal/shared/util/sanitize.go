package util

import (
	"errors"
	"strings"
)

var errBadFileName = errors.New("invalid file name")

// SanitizeFileName makes an uploaded file name safe to embed in a storage
// key: traversal sequences are rejected outright and path separators are
// flattened to underscores.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errBadFileName
	}
	cleaned := strings.NewReplacer("/", "_", "\\", "_").Replace(strings.TrimSpace(name))
	if cleaned == "" {
		return "", errBadFileName
	}
	return cleaned, nil
}
