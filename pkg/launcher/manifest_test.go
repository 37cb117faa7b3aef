package launcher

import (
	"testing"

	"github.com/glorpus-work/ccpack/pkg/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultLayout(t *testing.T) {
	l, err := layout.Default()
	require.NoError(t, err)

	m := New(l.QuickInstall.Launcher, "ExampleMods")
	assert.Equal(t, "CrossCode", m.Name)
	assert.Equal(t, "1.0.0", m.Version)
	assert.Equal(t, "ExampleMods/main.html", m.Main)
	assert.Equal(t, "--ignore-gpu-blacklist --ignore-gpu-blocklist --disable-direct-composition "+
		"--disable-background-networking --in-process-gpu --password-store=basic", m.ChromiumArgs)
	assert.Equal(t, Window{Toolbar: false, Icon: "favicon.png", Width: 1136, Height: 640, Fullscreen: false}, m.Window)
}

func TestEncode(t *testing.T) {
	m := New(layout.Launcher{
		Name:         "CrossCode",
		Version:      "1.0.0",
		Entry:        "main.html",
		ChromiumArgs: []string{"--in-process-gpu", "--password-store=basic"},
		Window:       layout.Window{Toolbar: true, Icon: "favicon.png", Width: 1136, Height: 640},
	}, "ccloader")

	data, err := m.Encode()
	require.NoError(t, err)

	want := `{
  "name": "CrossCode",
  "version": "1.0.0",
  "main": "ccloader/main.html",
  "chromium-args": "--in-process-gpu --password-store=basic",
  "window": {
    "toolbar": true,
    "icon": "favicon.png",
    "width": 1136,
    "height": 640,
    "fullscreen": false
  }
}
`
	assert.Equal(t, want, string(data))

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestEncode_NoHTMLEscaping(t *testing.T) {
	m := &Manifest{Name: "a<b>&c"}
	data, err := m.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "a<b>&c"`)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte("{"))
	assert.Error(t, err)
}
