// Package archive opens verse stores that ship compressed and caches their
// decompressed form.
package archive

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/dra/internal/validation"
)

// Reader yields the decompressed bytes of a store file.
type Reader struct {
	io.Reader
	Type         validation.FileType
	file         *os.File
	decompressor io.Closer
}

// NewReader opens path and wraps it in the decompressor its content calls
// for. Files that are not xz or gzip compressed are read as-is.
func NewReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	fileType, err := validation.DetectStoreType(f, path)
	if err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("rewind store: %w", err)
	}

	var reader io.Reader = f
	var decompressor io.Closer

	switch fileType {
	case validation.FileTypeXZ:
		xzr, err := xz.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		reader = xzr
	case validation.FileTypeGzip:
		gzr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		reader = gzr
		decompressor = gzr
	}

	return &Reader{
		Reader:       reader,
		Type:         fileType,
		file:         f,
		decompressor: decompressor,
	}, nil
}

// Compressed reports whether the underlying file is xz or gzip compressed.
func (r *Reader) Compressed() bool {
	return r.Type == validation.FileTypeXZ || r.Type == validation.FileTypeGzip
}

// Close closes the reader and any underlying decompressors.
func (r *Reader) Close() error {
	var errs []error
	if r.decompressor != nil {
		if err := r.decompressor.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.file.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
