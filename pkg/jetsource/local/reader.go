// Package local implements jetdb.PageReader against a file on the
// local filesystem. It is one of the "external collaborators" spec.md
// §1 scopes the random-page-read I/O primitive out to.
package local

import (
	"fmt"
	"io"
	"os"

	"github.com/martti/tsjetdb/pkg/jetdb"
)

const headerSniffSize = 2048

// Source owns an open file handle and can be asked for its header
// bytes before the database's page size is known, then handed a page
// size to become a jetdb.PageReader.
type Source struct {
	file *os.File
}

// Open opens path for reading. The caller must eventually call
// Source.Close, or the PageReader returned by NewPageReader's Close.
func Open(path string) (*Source, error) {
	file, err := openFileDirect(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("jetsource/local: opening %s: %w", path, err)
	}

	return &Source{file: file}, nil
}

// Header reads the fixed header-sniffing prefix HeaderDecoder needs,
// regardless of the database's eventual page size.
func (s *Source) Header() ([]byte, error) {
	buf := make([]byte, headerSniffSize)

	_, err := io.ReadFull(s.file, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("jetsource/local: reading header: %w", err)
	}

	return buf, nil
}

// Close releases the underlying file handle. Idempotent.
func (s *Source) Close() error {
	if s.file == nil {
		return nil
	}

	err := s.file.Close()
	s.file = nil

	return err
}

// NewPageReader returns a jetdb.PageReader over this source's file,
// once the database's page size is known from its header.
func (s *Source) NewPageReader(pageSize int) jetdb.PageReader {
	return &pageReader{file: s.file, pageSize: pageSize}
}

type pageReader struct {
	file     *os.File
	pageSize int
}

func (r *pageReader) PageSize() int {
	return r.pageSize
}

func (r *pageReader) ReadPage(page int64) ([]byte, error) {
	if r.file == nil {
		return nil, fmt.Errorf("jetsource/local: %w: reader is closed", jetdb.ErrIO)
	}

	buf := make([]byte, r.pageSize)
	offset := jetdb.ByteOffset(page, r.pageSize)

	n, err := r.file.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("jetsource/local: %w: %v", jetdb.ErrIO, err)
	}

	if n < r.pageSize {
		return nil, fmt.Errorf("jetsource/local: %w: short read of page %d (%d of %d bytes)", jetdb.ErrIO, page, n, r.pageSize)
	}

	return buf, nil
}

func (r *pageReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil

	return err
}
