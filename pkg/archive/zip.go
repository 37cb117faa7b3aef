package archive

import (
	"archive/zip"
	"context"
	"io/fs"
	"time"

	"github.com/mholt/archives"
)

// msdosDir is the MS-DOS directory attribute in the low byte of a zip
// entry's external attributes.
const msdosDir = 0x10

// ZipWriter writes a deflate compressed zip archive.
type ZipWriter struct {
	*staged
	format archives.Zip
}

var _ Writer = (*ZipWriter)(nil)

// NewZipWriter opens a zip Writer for path.
func NewZipWriter(path string, opts Options) (*ZipWriter, error) {
	s, err := newStaged(path, opts, zipInfo)
	if err != nil {
		return nil, err
	}

	return &ZipWriter{
		staged: s,
		format: archives.Zip{Compression: zip.Deflate},
	}, nil
}

// Commit writes the zip central directory and moves the archive into place.
func (w *ZipWriter) Commit(ctx context.Context) error {
	return w.commit(ctx, w.format)
}

// zipInfo carries no owner at all since zip has no fields for one.
// zip.FileInfoHeader turns a directory mode into the Unix mode bits in the
// upper half of the external attributes plus msdosDir, and directory entries
// are always stored uncompressed.
func zipInfo(base string, mode fs.FileMode, size int64, modTime time.Time) *entryInfo {
	if mode.IsDir() {
		size = 0
	}
	return &entryInfo{
		name:    base,
		size:    size,
		mode:    mode,
		modTime: modTime,
	}
}
