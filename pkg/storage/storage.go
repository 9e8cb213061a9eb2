// Package storage defines where export files are written and import files
// are read from.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrFileNotFound is returned by Open when the file does not exist.
var ErrFileNotFound = errors.New("file not found")

// Storage reads and writes whole files by name.
type Storage interface {
	// SaveFile writes src to dstFilename, replacing any existing file.
	SaveFile(ctx context.Context, src io.Reader, dstFilename string) error
	// Open returns the content of filename. The caller closes it.
	Open(ctx context.Context, filename string) (io.ReadCloser, error)
}
