// Package launcher builds the package.json manifest that makes the game's
// runtime start the mod loader from a quick-install archive.
package launcher

import (
	"bytes"
	"encoding/json"
	"path"
	"strings"

	"github.com/glorpus-work/ccpack/pkg/errors"
	"github.com/glorpus-work/ccpack/pkg/layout"
)

// FileName is the manifest's name at the root of the quick-install archive.
const FileName = "package.json"

// Manifest is the launcher manifest. Field order is the key order on disk.
type Manifest struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Main         string `json:"main"`
	ChromiumArgs string `json:"chromium-args"`
	Window       Window `json:"window"`
}

// Window is the launcher window geometry.
type Window struct {
	Toolbar    bool   `json:"toolbar"`
	Icon       string `json:"icon"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Fullscreen bool   `json:"fullscreen"`
}

// New builds the manifest for a loader installed in dirName.
func New(settings layout.Launcher, dirName string) *Manifest {
	return &Manifest{
		Name:         settings.Name,
		Version:      settings.Version,
		Main:         path.Join(dirName, settings.Entry),
		ChromiumArgs: strings.Join(settings.ChromiumArgs, " "),
		Window: Window{
			Toolbar:    settings.Window.Toolbar,
			Icon:       settings.Window.Icon,
			Width:      settings.Window.Width,
			Height:     settings.Window.Height,
			Fullscreen: settings.Window.Fullscreen,
		},
	}
}

// Encode renders the manifest as UTF-8 JSON with two space indentation and a
// trailing newline.
func (m *Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m); err != nil {
		return nil, errors.Wrap(err, "error marshaling launcher manifest")
	}
	return buf.Bytes(), nil
}

// Decode parses a manifest read back from an archive.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "error parsing launcher manifest")
	}
	return &m, nil
}
