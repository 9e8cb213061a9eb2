// Package localstorage provides local file system storage implementation.
package localstorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sgaunet/issue-manager/pkg/constants"
	"github.com/sgaunet/issue-manager/pkg/storage"
)

// LocalStorage implements storage interface for local file system.
type LocalStorage struct {
	dirpath string
}

var _ storage.Storage = (*LocalStorage)(nil)

// NewLocalStorage creates a new LocalStorage instance. Relative file names
// are resolved against dirpath; an empty dirpath means the working directory.
func NewLocalStorage(dirpath string) *LocalStorage {
	return &LocalStorage{
		dirpath: dirpath,
	}
}

func (s *LocalStorage) resolve(filename string) string {
	if s.dirpath == "" || filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(s.dirpath, filename)
}

// SaveFile writes src to dstFilename with context cancellation support.
// A partially written file is removed on failure.
func (s *LocalStorage) SaveFile(ctx context.Context, src io.Reader, dstFilename string) error {
	if ctx.Err() != nil {
		return fmt.Errorf("operation cancelled before starting: %w", ctx.Err())
	}

	dstPath := s.resolve(dstFilename)
	//nolint:gosec // G304: writing the user-chosen export file is the point
	fDst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.DefaultFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstPath, err)
	}

	if err := copyWithContext(ctx, fDst, src); err != nil {
		_ = fDst.Close()
		_ = os.Remove(dstPath)
		return err
	}
	if err := fDst.Close(); err != nil {
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to close destination file %s: %w", dstPath, err)
	}
	return nil
}

// Open opens filename for reading.
func (s *LocalStorage) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	if ctx.Err() != nil {
		return nil, fmt.Errorf("operation cancelled before starting: %w", ctx.Err())
	}
	path := s.resolve(filename)
	f, err := os.Open(path) //nolint:gosec // G304: reading the user-chosen import file is the point
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err == nil && info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", storage.ErrFileNotFound, path)
	}
	return f, nil
}

// copyWithContext copies src to dst, checking for cancellation between chunks.
func copyWithContext(ctx context.Context, dst io.Writer, src io.Reader) error {
	buf := make([]byte, constants.InitialLineBuffer)
	for {
		if ctx.Err() != nil {
			return fmt.Errorf("copy cancelled: %w", ctx.Err())
		}

		nr, er := src.Read(buf)
		if nr > 0 {
			nw, ew := dst.Write(buf[0:nr])
			if ew != nil {
				return fmt.Errorf("failed to write to destination: %w", ew)
			}
			if nr != nw {
				return fmt.Errorf("short write: wrote %d bytes, expected %d", nw, nr)
			}
		}
		if er != nil {
			if errors.Is(er, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read from source: %w", er)
		}
	}
}
