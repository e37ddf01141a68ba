package store

import (
	"testing"

	"github.com/MKhiriev/pilot-docs-intake/internal/config"
	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorages(t *testing.T) {
	t.Run("local", func(t *testing.T) {
		s, err := NewStorages(config.Storage{
			Backend: config.StorageBackendLocal,
			Files:   config.Files{Dir: t.TempDir()},
		}, logger.Nop())
		require.NoError(t, err)
		assert.IsType(t, &localBlobStore{}, s.BlobStore)
	})

	t.Run("remote", func(t *testing.T) {
		s, err := NewStorages(config.Storage{
			Backend: config.StorageBackendRemote,
			Blob:    config.Blob{BaseURL: "https://blob.vercel-storage.com"},
		}, logger.Nop())
		require.NoError(t, err)
		assert.IsType(t, &remoteBlobStore{}, s.BlobStore)
	})

	t.Run("unknown", func(t *testing.T) {
		s, err := NewStorages(config.Storage{Backend: "ftp"}, logger.Nop())
		assert.ErrorIs(t, err, ErrUnknownBackend)
		assert.Nil(t, s)
	})
}
