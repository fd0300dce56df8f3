package documents

import (
	"strings"
	"time"
)

// URLPrefix is prepended to the storage key to build a document's file URL.
// Local stores also serve the raw files under this path.
const URLPrefix = "/uploads/"

// Document represents an uploaded file owned by a user, together with the
// structured content extracted from it. Data holds the extracted content as a
// serialized JSON blob and is returned to clients byte for byte.
type Document struct {
	ID        string
	UserID    string
	FileType  string
	FileURL   string
	Data      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StorageKey derives the object-store key from the file URL.
func (d Document) StorageKey() string {
	return strings.TrimPrefix(d.FileURL, URLPrefix)
}
