// Package testutil holds fixtures shared by the packaging tests: a project
// tree matching the built-in layout and readers for the written archives.
package testutil

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ProjectFiles is a built project for the ExampleMods 1.2.3 release. The
// notes, build info and sources must not end up in any archive.
var ProjectFiles = map[string]string{
	"LICENSE":                     "MIT",
	"main.html":                   "<html></html>",
	"tool.config.json":            `{"name": "ExampleMods", "version": "1.2.3", "extra": true}`,
	"common/notes.txt":            "not shipped",
	"common/dist/common.js":       "common",
	"common/dist/out.tsbuildinfo": "{}",
	"common/vendor-libs/lib.js":   "lib",
	"dist/loader.js":              "loader",
	"runtime/ccmod.json":          `{"id": "ccloader-runtime"}`,
	"runtime/dist/runtime.js":     "runtime",
	"runtime/media/logo.png":      "png",
	"src/loader.ts":               "not shipped",
}

// PackageEntries lists the entries packing ProjectFiles yields, in order.
var PackageEntries = []string{
	"LICENSE",
	"main.html",
	"tool.config.json",
	"common/",
	"common/dist/",
	"common/dist/common.js",
	"common/vendor-libs/",
	"common/vendor-libs/lib.js",
	"dist/",
	"dist/loader.js",
	"runtime/",
	"runtime/ccmod.json",
	"runtime/dist/",
	"runtime/dist/runtime.js",
	"runtime/media/",
	"runtime/media/logo.png",
}

// WriteProject writes ProjectFiles without the skipped names to a new
// temporary directory and returns it.
func WriteProject(t *testing.T, skip ...string) string {
	t.Helper()
	files := maps.Clone(ProjectFiles)
	for _, name := range skip {
		delete(files, name)
	}
	root := t.TempDir()
	WriteTree(t, root, files)
	return root
}

// WriteTree writes files, keyed by slash separated relative path, below root.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", name, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
}

// ListArchive returns the entry names of a .zip or .tar.gz archive in order
// and the contents of its regular files.
func ListArchive(t *testing.T, path string) ([]string, map[string]string) {
	t.Helper()
	if strings.HasSuffix(path, ".zip") {
		return listZip(t, path)
	}
	return listTarGz(t, path)
}

func listZip(t *testing.T, path string) ([]string, map[string]string) {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer r.Close()

	var names []string
	contents := map[string]string{}
	for _, f := range r.File {
		names = append(names, f.Name)
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open %s in %s: %v", f.Name, path, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read %s in %s: %v", f.Name, path, err)
		}
		contents[f.Name] = string(data)
	}
	return names, contents
}

func listTarGz(t *testing.T, path string) ([]string, map[string]string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("Failed to read gzip stream of %s: %v", path, err)
	}
	defer gz.Close()

	var names []string
	contents := map[string]string{}
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Failed to read tar entry of %s: %v", path, err)
		}
		names = append(names, hdr.Name)
		if hdr.Typeflag == tar.TypeDir {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("Failed to read %s in %s: %v", hdr.Name, path, err)
		}
		contents[hdr.Name] = string(data)
	}
	return names, contents
}
