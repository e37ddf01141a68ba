package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStore(t *testing.T) (*localBlobStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewLocalBlobStore(dir, logger.Nop())
	require.NoError(t, err)
	return s.(*localBlobStore), dir
}

func TestLocalBlobStore_PutAndGet(t *testing.T) {
	s, dir := newTestLocalStore(t)
	ctx := context.Background()

	blob, err := s.Put(ctx, "pilot-docs/sess-1/passport/1700000000000_scan.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	assert.Equal(t, "pilot-docs/sess-1/passport/1700000000000_scan.pdf", blob.Pathname)
	assert.Equal(t, int64(8), blob.Size)
	assert.True(t, strings.HasPrefix(blob.URL, "file://"))
	assert.False(t, blob.UploadedAt.IsZero())
	assert.FileExists(t, filepath.Join(dir, "pilot-docs", "sess-1", "passport", "1700000000000_scan.pdf"))

	data, err := s.Get(ctx, blob.URL)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	byPath, err := s.Get(ctx, blob.Pathname)
	require.NoError(t, err)
	assert.Equal(t, data, byPath)
}

func TestLocalBlobStore_PutRejectsEscapingPaths(t *testing.T) {
	s, _ := newTestLocalStore(t)

	for _, p := range []string{"", "/etc/passwd", "../outside.txt", "pilot-docs/../../x", "."} {
		t.Run(p, func(t *testing.T) {
			_, err := s.Put(context.Background(), p, []byte("x"))
			assert.ErrorIs(t, err, ErrInvalidPathname)
		})
	}
}

func TestLocalBlobStore_ListFiltersByPrefixAndLimit(t *testing.T) {
	s, _ := newTestLocalStore(t)
	ctx := context.Background()

	for _, p := range []string{
		"pilot-docs/a/visa/1_a.pdf",
		"pilot-docs/b/visa/2_b.pdf",
		"pilot-docs/c/cv/3_c.pdf",
		"other/d.pdf",
	} {
		_, err := s.Put(ctx, p, []byte(p))
		require.NoError(t, err)
	}

	all, err := s.List(ctx, "pilot-docs/", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	for _, b := range all {
		assert.True(t, strings.HasPrefix(b.Pathname, "pilot-docs/"))
	}

	limited, err := s.List(ctx, "pilot-docs/", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestLocalBlobStore_ListReportsModTime(t *testing.T) {
	s, dir := newTestLocalStore(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "pilot-docs/a/cv/1_cv.pdf", []byte("cv"))
	require.NoError(t, err)

	old := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "pilot-docs", "a", "cv", "1_cv.pdf"), old, old))

	blobs, err := s.List(ctx, "pilot-docs/", 0)
	require.NoError(t, err)
	require.Len(t, blobs, 1)
	assert.True(t, old.Equal(blobs[0].UploadedAt))
}

func TestLocalBlobStore_Delete(t *testing.T) {
	s, _ := newTestLocalStore(t)
	ctx := context.Background()

	blob, err := s.Put(ctx, "pilot-docs/a/cv/1_cv.pdf", []byte("cv"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, blob.URL))
	assert.ErrorIs(t, s.Delete(ctx, blob.URL), ErrBlobNotFound)

	_, err = s.Get(ctx, blob.URL)
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestLocalBlobStore_RejectsForeignURLs(t *testing.T) {
	s, _ := newTestLocalStore(t)
	ctx := context.Background()

	outside := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o600))

	_, err := s.Get(ctx, "file://"+filepath.ToSlash(outside))
	assert.ErrorIs(t, err, ErrForeignBlobURL)

	_, err = s.Get(ctx, "https://example.com/file.pdf")
	assert.ErrorIs(t, err, ErrForeignBlobURL)

	assert.ErrorIs(t, s.Delete(ctx, "file://"+filepath.ToSlash(outside)), ErrForeignBlobURL)
	assert.FileExists(t, outside)
}

func TestLocalBlobStore_CancelledContext(t *testing.T) {
	s, _ := newTestLocalStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Put(ctx, "pilot-docs/a/cv/1.pdf", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
