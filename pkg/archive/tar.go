package archive

import (
	"archive/tar"
	"context"
	"io/fs"
	"time"

	"github.com/mholt/archives"
)

// TarGzWriter writes a gzip compressed tar archive.
type TarGzWriter struct {
	*staged
	format archives.CompressedArchive
}

var _ Writer = (*TarGzWriter)(nil)

// NewTarGzWriter opens a tar.gz Writer for path.
func NewTarGzWriter(path string, opts Options) (*TarGzWriter, error) {
	s, err := newStaged(path, opts, tarInfo)
	if err != nil {
		return nil, err
	}

	return &TarGzWriter{
		staged: s,
		format: archives.CompressedArchive{
			Compression: archives.Gz{CompressionLevel: gzipLevel},
			Archival:    archives.Tar{},
		},
	}, nil
}

// Commit writes the tar stream and moves the archive into place.
func (w *TarGzWriter) Commit(ctx context.Context) error {
	return w.commit(ctx, w.format)
}

// tarInfo hands tar.FileInfoHeader a *tar.Header through Sys, which makes it
// take the owner fields from there instead of the packaging machine. The
// directory indicator comes from the mode and ends up as TypeDir.
func tarInfo(base string, mode fs.FileMode, size int64, modTime time.Time) *entryInfo {
	return &entryInfo{
		name:    base,
		size:    size,
		mode:    mode,
		modTime: modTime,
		sys: &tar.Header{
			Uid:   0,
			Gid:   0,
			Uname: "",
			Gname: "",
		},
	}
}
