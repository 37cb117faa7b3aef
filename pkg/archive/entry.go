package archive

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/glorpus-work/ccpack/pkg/errors"
	"github.com/glorpus-work/ccpack/pkg/fsutil"
	"github.com/mholt/archives"
)

// entryInfo is the normalized fs.FileInfo handed to the archives library.
// Nothing from the source file's stat survives except type and size.
type entryInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	sys     any
}

func (e *entryInfo) Name() string       { return e.name }
func (e *entryInfo) Size() int64        { return e.size }
func (e *entryInfo) Mode() fs.FileMode  { return e.mode }
func (e *entryInfo) ModTime() time.Time { return e.modTime }
func (e *entryInfo) IsDir() bool        { return e.mode.IsDir() }
func (e *entryInfo) Sys() any           { return e.sys }

// memFile serves in-memory content (or nothing, for directories).
type memFile struct {
	*bytes.Reader
	info *entryInfo
}

func (f *memFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *memFile) Close() error               { return nil }

// infoFunc builds the format specific FileInfo for an entry.
type infoFunc func(base string, mode fs.FileMode, size int64, modTime time.Time) *entryInfo

// staged collects the entries of one archive until it is committed. Each
// Writer owns its own staged value.
type staged struct {
	out     *fsutil.PendingFile
	files   []archives.FileInfo
	newInfo infoFunc
	modTime time.Time
	exclude []string
	closed  bool
}

func newStaged(path string, opts Options, newInfo infoFunc) (*staged, error) {
	out, err := fsutil.CreatePending(path, fsutil.FileModeDefault)
	if err != nil {
		return nil, err
	}

	modTime := opts.ModTime
	if modTime.IsZero() {
		modTime = time.Now()
	}

	return &staged{
		out:     out,
		newInfo: newInfo,
		modTime: modTime.UTC().Truncate(time.Second),
		exclude: slices.Clone(opts.Exclude),
	}, nil
}

// AddFile adds a regular file with mode 0644.
func (s *staged) AddFile(name string, data []byte) error {
	clean, err := cleanName(name)
	if err != nil {
		return err
	}
	info := s.newInfo(path.Base(clean), fsutil.FileModeDefault, int64(len(data)), s.modTime)
	return s.push(memEntry(clean, info, data))
}

// AddDir adds a directory marker with mode 0755. The stored name always ends
// in exactly one slash.
func (s *staged) AddDir(name string) error {
	clean, err := cleanName(name)
	if err != nil {
		return err
	}
	info := s.newInfo(path.Base(clean), fs.ModeDir|fsutil.DirModeDefault, 0, s.modTime)
	return s.push(memEntry(clean+"/", info, nil))
}

// AddPath adds src under name, normalizing ownership, permissions and time.
func (s *staged) AddPath(src, name string, recursive bool) error {
	if s.closed {
		return errors.Wrapf(errors.ErrWriterClosed, "adding %s", name)
	}
	if _, err := cleanName(name); err != nil {
		return err
	}

	return walkSource(src, name, recursive, s.exclude, func(archivePath, srcPath string, info fs.FileInfo) error {
		if info.IsDir() {
			return s.AddDir(archivePath)
		}
		clean, err := cleanName(archivePath)
		if err != nil {
			return err
		}
		entry := s.newInfo(path.Base(clean), distMode(info.Mode()), info.Size(), s.modTime)
		return s.push(diskEntry(clean, entry, srcPath))
	})
}

// Close discards the output unless it was committed.
func (s *staged) Close() error {
	s.closed = true
	return s.out.Discard()
}

func (s *staged) push(file archives.FileInfo) error {
	if s.closed {
		return errors.Wrapf(errors.ErrWriterClosed, "adding %s", file.NameInArchive)
	}
	s.files = append(s.files, file)
	return nil
}

func (s *staged) commit(ctx context.Context, format archives.Archiver) error {
	if s.closed {
		return errors.Wrapf(errors.ErrWriterClosed, "committing %s", s.out.Path())
	}
	s.closed = true

	if err := format.Archive(ctx, s.out, s.files); err != nil {
		_ = s.out.Discard()
		return errors.Wrapf(err, "failed to write archive %s", s.out.Path())
	}
	return s.out.Commit()
}

func memEntry(name string, info *entryInfo, data []byte) archives.FileInfo {
	return archives.FileInfo{
		FileInfo:      info,
		NameInArchive: name,
		Open: func() (fs.File, error) {
			return &memFile{Reader: bytes.NewReader(data), info: info}, nil
		},
	}
}

func diskEntry(name string, info *entryInfo, src string) archives.FileInfo {
	return archives.FileInfo{
		FileInfo:      info,
		NameInArchive: name,
		Open: func() (fs.File, error) {
			file, err := os.Open(src)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to open source file %s", src)
			}
			return &sourceFile{file: file, path: src, size: info.size}, nil
		},
	}
}

// sourceFile reads a file added from disk and fails once its content is no
// longer exactly the size recorded when it was added. The archive headers
// are written from that size before any content is read.
type sourceFile struct {
	file  *os.File
	path  string
	size  int64
	read  int64
	ended bool
}

func (f *sourceFile) Stat() (fs.FileInfo, error) { return f.file.Stat() }
func (f *sourceFile) Close() error               { return f.file.Close() }

func (f *sourceFile) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if f.read == f.size {
		return 0, f.checkEnd()
	}
	if remaining := f.size - f.read; int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := f.file.Read(p)
	f.read += int64(n)
	switch {
	case err == io.EOF && f.read < f.size:
		return n, errors.Wrapf(errors.ErrSourceChanged, "%s shrank from %d to %d bytes", f.path, f.size, f.read)
	case err != nil && err != io.EOF:
		return n, errors.Wrapf(err, "failed to read source file %s", f.path)
	case f.read == f.size:
		return n, f.checkEnd()
	}
	return n, nil
}

// checkEnd makes sure nothing follows the recorded size.
func (f *sourceFile) checkEnd() error {
	if f.ended {
		return io.EOF
	}
	f.ended = true

	var extra [1]byte
	n, err := f.file.Read(extra[:])
	if n > 0 {
		return errors.Wrapf(errors.ErrSourceChanged, "%s grew past %d bytes", f.path, f.size)
	}
	if err != nil && err != io.EOF {
		return errors.Wrapf(err, "failed to read source file %s", f.path)
	}
	return io.EOF
}

// cleanName validates an archive-relative name and returns it in canonical
// form without a trailing slash.
func cleanName(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return "", errors.Wrapf(errors.ErrInvalidEntryName, "%q", name)
	}
	clean := path.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", errors.Wrapf(errors.ErrInvalidEntryName, "%q", name)
	}
	return clean, nil
}

// distMode reduces a source mode to the two permission sets distributed
// archives carry.
func distMode(mode fs.FileMode) fs.FileMode {
	switch {
	case mode.IsDir():
		return fs.ModeDir | fsutil.DirModeDefault
	case mode&fsutil.OwnerExec != 0:
		return fsutil.FileModeExec
	default:
		return fsutil.FileModeDefault
	}
}

func excluded(patterns []string, base string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

type visitFunc func(archivePath, srcPath string, info fs.FileInfo) error

// walkSource visits src and, if it is a directory and recursive is set, all of
// its descendants in lexical order. Excluded names are only checked below src.
func walkSource(src, name string, recursive bool, exclude []string, visit visitFunc) error {
	info, err := os.Lstat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errors.ErrSourceNotFound, "%s", src)
		}
		return errors.Wrapf(err, "failed to stat %s", src)
	}
	if err := checkType(src, info); err != nil {
		return err
	}
	if !info.IsDir() || !recursive {
		return visit(name, src, info)
	}

	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "error accessing path %s", p)
		}

		rel, err := filepath.Rel(src, p)
		if err != nil {
			return errors.Wrapf(err, "error getting relative path of %s", p)
		}

		archivePath := name
		if rel != "." {
			if excluded(exclude, d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			archivePath = path.Join(name, filepath.ToSlash(rel))
		}

		info, err := d.Info()
		if err != nil {
			return errors.Wrapf(err, "failed to get file info for %s", p)
		}
		if err := checkType(p, info); err != nil {
			return err
		}
		return visit(archivePath, p, info)
	})
}

func checkType(p string, info fs.FileInfo) error {
	if info.IsDir() || info.Mode().IsRegular() {
		return nil
	}
	return errors.Wrapf(errors.ErrUnsupportedFileType, "%s (%s)", p, info.Mode().Type())
}
