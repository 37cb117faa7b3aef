// Package dist builds the mod loader's distribution archives: a full package
// and a quick-install archive for every archive format.
package dist

import (
	"context"
	"path"
	"path/filepath"
	"time"

	"github.com/glorpus-work/ccpack/internal/logger"
	"github.com/glorpus-work/ccpack/pkg/archive"
	"github.com/glorpus-work/ccpack/pkg/config"
	"github.com/glorpus-work/ccpack/pkg/errors"
	"github.com/glorpus-work/ccpack/pkg/fsutil"
	"github.com/glorpus-work/ccpack/pkg/launcher"
	"github.com/glorpus-work/ccpack/pkg/layout"
)

// Kind tells the two archives apart.
type Kind string

const (
	KindPackage      Kind = "package"
	KindQuickInstall Kind = "quick-install"
)

// Artifact is one archive written by the Packer.
type Artifact struct {
	Path   string
	Format archive.Format
	Kind   Kind
}

// Packer writes the distribution archives of one project.
type Packer struct {
	Config     *config.ToolConfig
	Layout     *layout.Layout
	ProjectDir string
	OutputDir  string

	// Formats defaults to archive.AllFormats.
	Formats []archive.Format
	// Now provides the timestamp stamped on every entry. Defaults to time.Now.
	Now func() time.Time
	// Create opens archive writers. Defaults to archive.Create.
	Create archive.CreateFunc
	// Verify re-opens every archive after writing it.
	Verify bool
}

// NewPacker returns a Packer with the default formats, clock and writers.
func NewPacker(cfg *config.ToolConfig, l *layout.Layout, projectDir, outputDir string) *Packer {
	return &Packer{
		Config:     cfg,
		Layout:     l,
		ProjectDir: projectDir,
		OutputDir:  outputDir,
		Formats:    archive.AllFormats(),
		Now:        time.Now,
		Create:     archive.Create,
		Verify:     true,
	}
}

// Pack writes the package and quick-install archive for every format and
// returns what it wrote. It stops at the first failure; archives finished
// before that are kept and returned.
func (p *Packer) Pack(ctx context.Context) ([]Artifact, error) {
	if p.Config == nil || p.Layout == nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, "packer needs a tool config and a layout")
	}

	formats := p.Formats
	if len(formats) == 0 {
		formats = archive.AllFormats()
	}
	create := p.Create
	if create == nil {
		create = archive.Create
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}

	if err := fsutil.EnsureDir(p.OutputDir); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", p.OutputDir)
	}

	manifest, err := launcher.New(p.Layout.QuickInstall.Launcher, p.Config.Name).Encode()
	if err != nil {
		return nil, err
	}

	opts := archive.Options{ModTime: now(), Exclude: p.Layout.Exclude}
	pkgBase, quickBase := p.Layout.ArchiveBaseNames(p.Config.Name, p.Config.Version)
	verifier := NewVerifier(p.Config, p.Layout)

	jobs := []struct {
		kind Kind
		base string
		fill func(archive.Writer) error
	}{
		{
			kind: KindPackage,
			base: pkgBase,
			fill: func(w archive.Writer) error { return p.addPackageFiles(ctx, w, "") },
		},
		{
			kind: KindQuickInstall,
			base: quickBase,
			fill: func(w archive.Writer) error { return p.addQuickInstallFiles(ctx, w, manifest) },
		},
	}

	var artifacts []Artifact
	for _, format := range formats {
		for _, job := range jobs {
			artifact := Artifact{
				Path:   filepath.Join(p.OutputDir, job.base+"."+format.Ext()),
				Format: format,
				Kind:   job.kind,
			}

			logger.Info("writing archive", logger.Fields{"path": artifact.Path, "kind": string(job.kind)})
			if err := writeArchive(ctx, create, artifact, opts, job.fill); err != nil {
				return artifacts, err
			}

			if p.Verify {
				if _, err := verifier.Verify(ctx, artifact.Path); err != nil {
					return artifacts, err
				}
			}

			logger.Success("archive written", logger.Fields{"path": artifact.Path})
			artifacts = append(artifacts, artifact)
		}
	}

	return artifacts, nil
}

// writeArchive owns the writer for one archive: whatever happens in fill,
// the writer is closed and uncommitted output is thrown away.
func writeArchive(ctx context.Context, create archive.CreateFunc, artifact Artifact, opts archive.Options, fill func(archive.Writer) error) error {
	w, err := create(artifact.Path, artifact.Format, opts)
	if err != nil {
		return errors.Wrapf(err, "failed to create archive %s", artifact.Path)
	}
	defer func() { _ = w.Close() }()

	if err := fill(w); err != nil {
		return errors.Wrapf(err, "failed to build archive %s", artifact.Path)
	}
	if err := w.Commit(ctx); err != nil {
		return errors.Wrapf(err, "failed to finalize archive %s", artifact.Path)
	}
	return nil
}

// addPackageFiles adds the layout's project paths below prefix.
func (p *Packer) addPackageFiles(ctx context.Context, w archive.Writer, prefix string) error {
	for _, entry := range p.Layout.Files {
		if err := ctx.Err(); err != nil {
			return err
		}

		src := filepath.Join(p.ProjectDir, filepath.FromSlash(entry.Path))
		name := path.Join(prefix, entry.Path)
		logger.Debug("adding path", logger.Fields{"src": src, "name": name, "recursive": entry.IsRecursive()})

		if err := w.AddPath(src, name, entry.IsRecursive()); err != nil {
			return err
		}
	}
	return nil
}

// addQuickInstallFiles adds the launcher manifest and placeholder directories
// and then the whole package nested in a directory named after the loader.
func (p *Packer) addQuickInstallFiles(ctx context.Context, w archive.Writer, manifest []byte) error {
	if err := w.AddFile(launcher.FileName, manifest); err != nil {
		return err
	}
	for _, dir := range p.Layout.QuickInstall.Dirs {
		if err := w.AddDir(dir); err != nil {
			return err
		}
	}
	if err := w.AddDir(p.Config.Name); err != nil {
		return err
	}
	return p.addPackageFiles(ctx, w, p.Config.Name)
}
