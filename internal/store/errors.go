package store

import "errors"

// Sentinel errors returned by [BlobStore] implementations. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrBlobNotFound is returned when the addressed object does not exist.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrInvalidPathname is returned when a pathname is empty, absolute, or
	// escapes the store root.
	ErrInvalidPathname = errors.New("invalid blob pathname")

	// ErrForeignBlobURL is returned when a URL does not belong to the
	// configured store. The store never follows such URLs.
	ErrForeignBlobURL = errors.New("blob url does not belong to this store")

	// ErrBlobStoreUnauthorized is returned when the blob API rejects the
	// configured token.
	ErrBlobStoreUnauthorized = errors.New("blob store rejected credentials")

	// ErrBlobStoreUnavailable is returned when the store cannot be reached or
	// answers with an unexpected status.
	ErrBlobStoreUnavailable = errors.New("blob store unavailable")
)

// ErrUnknownBackend is returned by [NewStorages] for an unsupported backend
// name.
var ErrUnknownBackend = errors.New("unknown storage backend")
