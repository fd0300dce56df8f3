package documents

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no document matches the lookup for the
// requesting user. Documents owned by other users are indistinguishable from
// missing ones.
var ErrNotFound = errors.New("document not found")

// ErrInvalidInput is returned for malformed upload or save requests.
var ErrInvalidInput = errors.New("invalid input")

// DocumentsRepo defines persistence operations for documents. Every lookup
// and mutation is scoped to the owning user.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	UpdateData(ctx context.Context, userID, documentID, data string) error
}
