package store

import (
	"fmt"

	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
)

// Storages groups the persistence components injected into the service
// layer.
type Storages struct {
	BlobStore BlobStore
}

// NewStorages builds the blob store selected by cfg.Backend.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Debug().Str("backend", cfg.Backend).Msg("creating storages")

	var (
		blobStore BlobStore
		err       error
	)
	switch cfg.Backend {
	case config.StorageBackendLocal:
		blobStore, err = NewLocalBlobStore(cfg.Files.Dir, logger)
	case config.StorageBackendRemote:
		blobStore, err = NewRemoteBlobStore(cfg.Blob, logger)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	return &Storages{BlobStore: blobStore}, nil
}
