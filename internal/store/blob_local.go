// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/pilot-docs-intake/internal/logger"
	"github.com/MKhiriev/pilot-docs-intake/models"
)

// localBlobStore is the file-system implementation of [BlobStore].
//
// Objects live under root at their pathname. URLs handed out are file://
// URLs of the absolute file path and the upload time is the file's
// modification time.
type localBlobStore struct {
	root   string
	logger *logger.Logger
}

// NewLocalBlobStore constructs a [BlobStore] rooted at dir, creating the
// directory if needed.
func NewLocalBlobStore(dir string, logger *logger.Logger) (BlobStore, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("error resolving blob directory: %w", err)
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("error creating blob directory: %w", err)
	}

	logger.Debug().Str("root", root).Msg("local blob store ready")
	return &localBlobStore{root: root, logger: logger}, nil
}

func (s *localBlobStore) Put(ctx context.Context, pathname string, data []byte) (models.StoredBlob, error) {
	log := logger.FromContext(ctx)

	target, err := s.resolvePathname(pathname)
	if err != nil {
		return models.StoredBlob{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.StoredBlob{}, err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		log.Err(err).Str("func", "localBlobStore.Put").Str("pathname", pathname).Msg("failed to create blob directory")
		return models.StoredBlob{}, errors.Join(ErrBlobStoreUnavailable, err)
	}

	// write-then-rename so a listing never sees a half-written file
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		log.Err(err).Str("func", "localBlobStore.Put").Str("pathname", pathname).Msg("failed to create temp file")
		return models.StoredBlob{}, errors.Join(ErrBlobStoreUnavailable, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return models.StoredBlob{}, errors.Join(ErrBlobStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return models.StoredBlob{}, errors.Join(ErrBlobStoreUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		log.Err(err).Str("func", "localBlobStore.Put").Str("pathname", pathname).Msg("failed to move blob into place")
		return models.StoredBlob{}, errors.Join(ErrBlobStoreUnavailable, err)
	}

	info, err := os.Stat(target)
	if err != nil {
		return models.StoredBlob{}, errors.Join(ErrBlobStoreUnavailable, err)
	}

	return s.blobFromFile(target, info), nil
}

func (s *localBlobStore) List(ctx context.Context, prefix string, limit int) ([]models.StoredBlob, error) {
	blobs := make([]models.StoredBlob, 0)

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".upload-") {
			return nil
		}

		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		if !strings.HasPrefix(filepath.ToSlash(rel), prefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// removed between readdir and stat
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}

		blobs = append(blobs, s.blobFromFile(p, info))
		if limit > 0 && len(blobs) >= limit {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.FromContext(ctx).Err(err).Str("func", "localBlobStore.List").Str("prefix", prefix).Msg("failed to list blobs")
		return nil, errors.Join(ErrBlobStoreUnavailable, err)
	}

	return blobs, nil
}

func (s *localBlobStore) Delete(ctx context.Context, blobURL string) error {
	target, err := s.resolveURL(blobURL)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrBlobNotFound
		}
		return errors.Join(ErrBlobStoreUnavailable, err)
	}
	return nil
}

func (s *localBlobStore) Get(ctx context.Context, blobURL string) ([]byte, error) {
	target, err := s.resolveURL(blobURL)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrBlobNotFound
		}
		return nil, errors.Join(ErrBlobStoreUnavailable, err)
	}
	return data, nil
}

func (s *localBlobStore) blobFromFile(p string, info fs.FileInfo) models.StoredBlob {
	rel, _ := filepath.Rel(s.root, p)
	return models.StoredBlob{
		URL:        (&url.URL{Scheme: "file", Path: filepath.ToSlash(p)}).String(),
		Pathname:   filepath.ToSlash(rel),
		Size:       info.Size(),
		UploadedAt: info.ModTime().UTC(),
	}
}

// resolvePathname maps a slash-separated pathname to a file under root.
func (s *localBlobStore) resolvePathname(pathname string) (string, error) {
	if pathname == "" || path.IsAbs(pathname) {
		return "", ErrInvalidPathname
	}
	cleaned := path.Clean(pathname)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPathname
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// resolveURL accepts a file:// URL inside root or a bare pathname.
func (s *localBlobStore) resolveURL(blobURL string) (string, error) {
	u, err := url.Parse(blobURL)
	if err != nil {
		return "", ErrForeignBlobURL
	}

	switch u.Scheme {
	case "":
		return s.resolvePathname(blobURL)
	case "file":
		target := filepath.Clean(filepath.FromSlash(u.Path))
		rel, err := filepath.Rel(s.root, target)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", ErrForeignBlobURL
		}
		return target, nil
	default:
		return "", ErrForeignBlobURL
	}
}
