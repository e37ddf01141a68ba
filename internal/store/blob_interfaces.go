package store

import (
	"context"

	"github.com/MKhiriev/pilot-docs-intake/models"
)

//go:generate mockgen -source=blob_interfaces.go -destination=../mock/blob_store_mock.go -package=mock

// BlobStore persists uploaded documents.
//
// Objects are addressed two ways: by pathname when written and listed
// (e.g. "pilot-docs/<session>/<type>/<ms>_<name>"), and by the URL the store
// returns for them when read or deleted.
type BlobStore interface {
	// Put writes data under pathname. An existing object at the same
	// pathname is overwritten.
	Put(ctx context.Context, pathname string, data []byte) (models.StoredBlob, error)
	// List returns at most limit objects whose pathname starts with prefix.
	// A non-positive limit returns every match.
	List(ctx context.Context, prefix string, limit int) ([]models.StoredBlob, error)
	// Delete removes the object addressed by url.
	Delete(ctx context.Context, url string) error
	// Get reads the object addressed by url.
	Get(ctx context.Context, url string) ([]byte, error)
}
