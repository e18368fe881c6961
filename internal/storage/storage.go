// Package storage defines the Storage interface and common types for artifact
// storage backends in the model registry.
//
// New backends are added by implementing the Storage interface and registering
// with the factory via an init() function in the backend's own package:
//
//	func init() {
//	    storage.Register("mybackend", func(cfg *config.Config) (Storage, error) {
//	        return NewMyBackend(cfg)
//	    })
//	}
//
// The main package imports each backend with a blank import to trigger init().
// This means adding a new backend requires no changes to the factory or main
// package — only a blank import in cmd/server/main.go.
package storage

import (
	"context"
	"io"
	"time"
)

// Storage defines the interface for artifact storage backends. Paths are
// slash-separated and relative to the backend root; every model owns one flat
// directory shared by all of its versions.
type Storage interface {
	// Upload stores a file, overwriting any existing file at the same path
	// (last-write-wins per name), and returns the storage result with size
	// and checksum.
	Upload(ctx context.Context, path string, reader io.Reader) (*UploadResult, error)

	// Download retrieves a file and returns a reader
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// List enumerates the files directly under a directory. A missing
	// directory is not an error: it degrades to an empty listing, the same
	// as a model that has never received an upload.
	List(ctx context.Context, dir string) ([]FileInfo, error)

	// Delete removes a single file from storage
	Delete(ctx context.Context, path string) error

	// DeleteAll removes a directory and everything under it
	DeleteAll(ctx context.Context, dir string) error

	// Exists checks if a file exists at the specified path
	Exists(ctx context.Context, path string) (bool, error)
}

// UploadResult contains information about an uploaded file
type UploadResult struct {
	// Path is the storage path where the file was stored
	Path string

	// Size is the file size in bytes
	Size int64

	// Checksum is the SHA256 hash of the file contents
	Checksum string
}

// FileInfo describes one stored file in a listing
type FileInfo struct {
	// Name is the bare file name within its directory
	Name string

	// Size is the file size in bytes
	Size int64

	// LastModified is the timestamp when the file was last modified
	LastModified time.Time
}
