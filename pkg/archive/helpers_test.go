package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testStamp = time.Date(2024, 5, 17, 12, 30, 0, 0, time.UTC)

// listedEntry is what the tests inspect of an archive entry, read back with
// the standard library readers.
type listedEntry struct {
	Name     string
	Dir      bool
	Size     int64
	Perm     fs.FileMode
	Uid      int
	Gid      int
	Uname    string
	Gname    string
	ModTime  time.Time
	Content  string
	Typeflag byte
	Attrs    uint32
}

func readArchive(t *testing.T, path string, format Format) []listedEntry {
	t.Helper()
	switch format {
	case FormatTarGz:
		return readTarGz(t, path)
	case FormatZip:
		return readZip(t, path)
	}
	t.Fatalf("unknown format %q", format)
	return nil
}

func readTarGz(t *testing.T, path string) []listedEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()

	var entries []listedEntry
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		content, err := io.ReadAll(tr)
		require.NoError(t, err)

		entries = append(entries, listedEntry{
			Name:     hdr.Name,
			Dir:      hdr.Typeflag == tar.TypeDir,
			Size:     hdr.Size,
			Perm:     hdr.FileInfo().Mode().Perm(),
			Uid:      hdr.Uid,
			Gid:      hdr.Gid,
			Uname:    hdr.Uname,
			Gname:    hdr.Gname,
			ModTime:  hdr.ModTime,
			Content:  string(content),
			Typeflag: hdr.Typeflag,
		})
	}
	return entries
}

func readZip(t *testing.T, path string) []listedEntry {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var entries []listedEntry
	for _, zf := range zr.File {
		rc, err := zf.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())

		entries = append(entries, listedEntry{
			Name:    zf.Name,
			Dir:     zf.Mode().IsDir(),
			Size:    int64(zf.UncompressedSize64),
			Perm:    zf.Mode().Perm(),
			ModTime: zf.Modified,
			Content: string(content),
			Attrs:   zf.ExternalAttrs,
		})
	}
	return entries
}

func entryNames(entries []listedEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

// build creates an archive of the given format at a fresh path, runs fill and
// commits it.
func build(t *testing.T, format Format, opts Options, fill func(w Writer)) string {
	t.Helper()
	out := filepath.Join(t.TempDir(), "out."+format.Ext())
	w, err := Create(out, format, opts)
	require.NoError(t, err)
	defer w.Close()

	fill(w)
	require.NoError(t, w.Commit(t.Context()))
	return out
}
