package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving raw document
// files. Save derives a collision-resistant storage key from the upload
// timestamp and the original file name.
type ObjectStore interface {
	Save(ctx context.Context, fileName string, r io.Reader) (storageKey string, sizeBytes int64, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Exists(ctx context.Context, storageKey string) (bool, error)
}
