package dist

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/glorpus-work/ccpack/pkg/config"
	"github.com/glorpus-work/ccpack/pkg/errors"
	"github.com/glorpus-work/ccpack/pkg/launcher"
	"github.com/glorpus-work/ccpack/pkg/layout"
	"github.com/mholt/archives"
)

// Verifier re-opens written archives and checks them against the release
// they were built for.
type Verifier struct {
	config *config.ToolConfig
	layout *layout.Layout
}

// NewVerifier creates a Verifier for the given release.
func NewVerifier(cfg *config.ToolConfig, l *layout.Layout) *Verifier {
	return &Verifier{config: cfg, layout: l}
}

// Verify opens the archive at archivePath, works out which kind of archive
// it is and checks its contents. Archives with a launcher manifest at the
// root are quick-install archives, everything else is a package.
func (v *Verifier) Verify(ctx context.Context, archivePath string) (Kind, error) {
	if _, err := os.Stat(archivePath); err != nil {
		return "", errors.Wrapf(errors.ErrArchiveInvalid, "archive %s not found", archivePath)
	}

	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return "", errors.Wrapf(errors.ErrArchiveInvalid, "failed to open archive %s: %v", archivePath, err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	if _, err := fs.Stat(fsys, launcher.FileName); err != nil {
		return KindPackage, v.verifyPackage(fsys, "")
	}
	return KindQuickInstall, v.verifyQuickInstall(fsys)
}

func (v *Verifier) verifyPackage(fsys fs.FS, root string) error {
	for _, entry := range v.layout.Files {
		name := path.Join(root, entry.Path)
		if _, err := fs.Stat(fsys, name); err != nil {
			return errors.Wrapf(errors.ErrArchiveInvalid, "entry %s missing", name)
		}
	}

	if !v.shipsConfig() {
		return nil
	}

	name := path.Join(root, config.DefaultFilename)
	file, err := fsys.Open(name)
	if err != nil {
		return errors.Wrapf(errors.ErrArchiveInvalid, "entry %s missing", name)
	}
	defer func() { _ = file.Close() }()

	packed, err := config.LoadFromReader(file)
	if err != nil {
		return errors.Wrapf(errors.ErrArchiveInvalid, "entry %s: %v", name, err)
	}
	if !packed.Equal(v.config) {
		return errors.Wrapf(errors.ErrArchiveInvalid,
			"config mismatch - expected %s %s but got %s %s",
			v.config.Name, v.config.Version, packed.Name, packed.Version)
	}
	return nil
}

func (v *Verifier) verifyQuickInstall(fsys fs.FS) error {
	data, err := fs.ReadFile(fsys, launcher.FileName)
	if err != nil {
		return errors.Wrapf(errors.ErrArchiveInvalid, "failed to read %s: %v", launcher.FileName, err)
	}
	manifest, err := launcher.Decode(data)
	if err != nil {
		return errors.Wrapf(errors.ErrArchiveInvalid, "%s: %v", launcher.FileName, err)
	}

	settings := v.layout.QuickInstall.Launcher
	expected := launcher.New(settings, v.config.Name)
	if manifest.Main != expected.Main {
		return errors.Wrapf(errors.ErrArchiveInvalid,
			"launcher entry mismatch - expected %s but got %s", expected.Main, manifest.Main)
	}
	if manifest.Name != expected.Name || manifest.Version != expected.Version {
		return errors.Wrapf(errors.ErrArchiveInvalid,
			"launcher identity mismatch - expected %s %s but got %s %s",
			expected.Name, expected.Version, manifest.Name, manifest.Version)
	}

	info, err := fs.Stat(fsys, manifest.Main)
	if err != nil || info.IsDir() {
		return errors.Wrapf(errors.ErrArchiveInvalid, "launcher entry %s missing", manifest.Main)
	}

	for _, dir := range v.layout.QuickInstall.Dirs {
		info, err := fs.Stat(fsys, path.Clean(dir))
		if err != nil || !info.IsDir() {
			return errors.Wrapf(errors.ErrArchiveInvalid, "directory %s missing", dir)
		}
	}

	return v.verifyPackage(fsys, v.config.Name)
}

func (v *Verifier) shipsConfig() bool {
	for _, entry := range v.layout.Files {
		if path.Clean(entry.Path) == config.DefaultFilename {
			return true
		}
	}
	return false
}
