// Package archive writes distribution archives in the tar.gz and zip container
// formats through a single Writer interface. Every entry is normalized for
// distribution: neutral ownership, 0644/0755 permissions and one timestamp
// per archive.
package archive

//go:generate mockgen -destination=./mocks/archive.go . Writer

import (
	"context"
	"strings"
	"time"

	"github.com/glorpus-work/ccpack/pkg/errors"
)

// Format identifies an archive container format.
type Format string

const (
	FormatTarGz Format = "tar.gz"
	FormatZip   Format = "zip"
)

// gzipLevel matches the level the loader's archives have always been built with.
const gzipLevel = 6

// AllFormats returns every supported format in build order.
func AllFormats() []Format {
	return []Format{FormatTarGz, FormatZip}
}

// ParseFormat maps a user supplied name (with or without leading dot) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "tar.gz", "tgz":
		return FormatTarGz, nil
	case "zip":
		return FormatZip, nil
	default:
		return "", errors.Wrapf(errors.ErrUnsupportedFormat, "%q", s)
	}
}

// Ext returns the file extension for the format, without the leading dot.
func (f Format) Ext() string {
	return string(f)
}

// Writer adds entries to one archive file. Entries are staged and streamed
// into the container on Commit; Close releases the writer and throws away the
// output unless Commit succeeded. Callers are expected to defer Close right
// after a successful Create.
type Writer interface {
	// AddFile adds a regular file with the given content.
	AddFile(name string, data []byte) error
	// AddDir adds an empty directory marker.
	AddDir(name string) error
	// AddPath adds a file or directory from disk under name. Directories are
	// descended into only when recursive is set.
	AddPath(src, name string, recursive bool) error
	// Commit writes the archive and moves it to its final path.
	Commit(ctx context.Context) error
	// Close discards uncommitted output. Safe to call more than once.
	Close() error
}

// Options tune how entries are written.
type Options struct {
	// ModTime is stamped on every entry. Zero means the time Create was called.
	ModTime time.Time
	// Exclude holds glob patterns matched against base names of entries
	// found while descending into directories.
	Exclude []string
}

// CreateFunc opens a Writer for path.
type CreateFunc func(path string, format Format, opts Options) (Writer, error)

// Create opens a Writer of the given format for path.
func Create(path string, format Format, opts Options) (Writer, error) {
	switch format {
	case FormatTarGz:
		w, err := NewTarGzWriter(path, opts)
		if err != nil {
			return nil, err
		}
		return w, nil
	case FormatZip:
		w, err := NewZipWriter(path, opts)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedFormat, "%q", format)
	}
}
