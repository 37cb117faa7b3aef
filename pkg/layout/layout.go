// Package layout describes what goes into the distribution archives: the
// ordered list of project paths, exclusion patterns, archive name templates
// and the quick-install extras. The default layout is embedded and parsed
// fresh for every run.
package layout

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"path"
	"regexp"
	"strings"

	"github.com/glorpus-work/ccpack/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultLayout []byte

// YAMLIndent is the number of spaces used when encoding a layout.
const YAMLIndent = 2

// Archive name template placeholders.
const (
	PlaceholderName    = "{name}"
	PlaceholderVersion = "{version}"
)

var placeholderPattern = regexp.MustCompile(`\{[^{}]*\}`)

// Layout is the packaging layout.
type Layout struct {
	Archives     ArchiveNames `yaml:"archives"`
	Files        []Entry      `yaml:"files"`
	Exclude      []string     `yaml:"exclude,omitempty"`
	QuickInstall QuickInstall `yaml:"quick_install"`
}

// ArchiveNames holds the name templates of the two archive kinds.
type ArchiveNames struct {
	Package      string `yaml:"package"`
	QuickInstall string `yaml:"quick_install"`
}

// Entry is a project path to include. Recursive defaults to true.
type Entry struct {
	Path      string `yaml:"path"`
	Recursive *bool  `yaml:"recursive,omitempty"`
}

// IsRecursive reports whether directories are descended into.
func (e Entry) IsRecursive() bool {
	return e.Recursive == nil || *e.Recursive
}

// QuickInstall holds the extras of the quick-install archive.
type QuickInstall struct {
	Dirs     []string `yaml:"dirs"`
	Launcher Launcher `yaml:"launcher"`
}

// Launcher holds the settings of the generated launcher manifest.
type Launcher struct {
	Name         string   `yaml:"name"`
	Version      string   `yaml:"version"`
	Entry        string   `yaml:"entry"`
	ChromiumArgs []string `yaml:"chromium_args"`
	Window       Window   `yaml:"window"`
}

// Window is the launcher window geometry.
type Window struct {
	Toolbar    bool   `yaml:"toolbar"`
	Icon       string `yaml:"icon"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// Default returns the embedded layout.
func Default() (*Layout, error) {
	return Parse(bytes.NewReader(defaultLayout))
}

// Load reads a layout file.
func Load(path string) (*Layout, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open layout file: %s", path)
	}
	defer func() { _ = file.Close() }()

	l, err := Parse(file)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return l, nil
}

// Parse decodes and validates a layout document. Unknown keys are rejected.
func Parse(reader io.Reader) (*Layout, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var l Layout
	if err := decoder.Decode(&l); err != nil {
		return nil, errors.Wrap(errors.ErrLayoutParse, err.Error())
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Encode writes the layout as YAML.
func (l *Layout) Encode(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(l); err != nil {
		return errors.Wrap(err, "failed to encode layout")
	}
	return encoder.Close()
}

// Validate checks the layout for unusable paths, patterns and templates.
func (l *Layout) Validate() error {
	if len(l.Files) == 0 {
		return errors.Wrap(errors.ErrLayoutValidation, "files cannot be empty")
	}
	for i, entry := range l.Files {
		if err := validatePath(entry.Path); err != nil {
			return errors.Wrapf(err, "files[%d]", i)
		}
	}
	for i, dir := range l.QuickInstall.Dirs {
		if err := validatePath(dir); err != nil {
			return errors.Wrapf(err, "quick_install.dirs[%d]", i)
		}
	}
	for _, pattern := range l.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return errors.Wrapf(errors.ErrLayoutValidation, "exclude pattern %q: %v", pattern, err)
		}
	}
	if err := validateTemplate("archives.package", l.Archives.Package); err != nil {
		return err
	}
	if err := validateTemplate("archives.quick_install", l.Archives.QuickInstall); err != nil {
		return err
	}
	if l.Archives.Package == l.Archives.QuickInstall {
		return errors.Wrap(errors.ErrLayoutValidation, "archive name templates must differ")
	}

	launcher := l.QuickInstall.Launcher
	if launcher.Name == "" || launcher.Version == "" {
		return errors.Wrap(errors.ErrLayoutValidation, "launcher name and version are required")
	}
	if err := validatePath(launcher.Entry); err != nil {
		return errors.Wrap(err, "quick_install.launcher.entry")
	}
	return nil
}

// ArchiveBaseNames expands both name templates.
func (l *Layout) ArchiveBaseNames(name, version string) (pkg, quickInstall string) {
	replacer := strings.NewReplacer(PlaceholderName, name, PlaceholderVersion, version)
	return replacer.Replace(l.Archives.Package), replacer.Replace(l.Archives.QuickInstall)
}

func validatePath(p string) error {
	if p == "" {
		return errors.Wrap(errors.ErrLayoutValidation, "path cannot be empty")
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, `\`) {
		return errors.Wrapf(errors.ErrLayoutValidation, "path %q must be relative and use forward slashes", p)
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return errors.Wrapf(errors.ErrLayoutValidation, "path %q escapes the project directory", p)
	}
	return nil
}

func validateTemplate(field, tmpl string) error {
	if strings.TrimSpace(tmpl) == "" {
		return errors.Wrapf(errors.ErrLayoutValidation, "%s cannot be empty", field)
	}
	if strings.ContainsAny(tmpl, `/\`) {
		return errors.Wrapf(errors.ErrLayoutValidation, "%s must not contain path separators", field)
	}
	for _, placeholder := range placeholderPattern.FindAllString(tmpl, -1) {
		if placeholder != PlaceholderName && placeholder != PlaceholderVersion {
			return errors.Wrapf(errors.ErrLayoutValidation, "%s: unknown placeholder %s", field, placeholder)
		}
	}
	return nil
}
