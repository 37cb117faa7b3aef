package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glorpus-work/ccpack/internal/logger"
	"github.com/glorpus-work/ccpack/pkg/archive"
	"github.com/glorpus-work/ccpack/pkg/errors"
	"github.com/glorpus-work/ccpack/pkg/layout"
	"github.com/glorpus-work/ccpack/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logger.SetTestOutput(io.Discard)
	t.Cleanup(logger.UnsetTestOutput)

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestBuild(t *testing.T) {
	t.Setenv(SourceDateEpochEnv, "")
	project := testutil.WriteProject(t)
	output := t.TempDir()

	out, err := execute(t, "-C", project, "-o", output, "--mtime", "1715949000")
	require.NoError(t, err)

	written := strings.Fields(out)
	assert.Equal(t, []string{
		filepath.Join(output, "ExampleMods_1.2.3_package.tar.gz"),
		filepath.Join(output, "ExampleMods_1.2.3_quick-install.tar.gz"),
		filepath.Join(output, "ExampleMods_1.2.3_package.zip"),
		filepath.Join(output, "ExampleMods_1.2.3_quick-install.zip"),
	}, written)

	for _, path := range written {
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}

	verified, err := execute(t, "-C", project, "verify", written[1], written[2])
	require.NoError(t, err)
	assert.Contains(t, verified, "ok (quick-install)")
	assert.Contains(t, verified, "ok (package)")
}

func TestBuild_SingleFormat(t *testing.T) {
	project := testutil.WriteProject(t)
	output := t.TempDir()

	_, err := execute(t, "-C", project, "-o", output, "-f", "zip", "--mtime", "1715949000")
	require.NoError(t, err)

	entries, err := os.ReadDir(output)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"ExampleMods_1.2.3_package.zip", "ExampleMods_1.2.3_quick-install.zip"}, names)
}

func TestBuild_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		config  *string
		wantErr error
	}{
		{name: "missing", wantErr: errors.ErrConfigNotFound},
		{name: "malformed", config: ptr(`{"name": `), wantErr: errors.ErrConfigParse},
		{name: "invalid version", config: ptr(`{"name": "ExampleMods", "version": "latest"}`), wantErr: errors.ErrConfigValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := t.TempDir()
			if tt.config != nil {
				require.NoError(t, os.WriteFile(filepath.Join(project, "tool.config.json"), []byte(*tt.config), 0o644))
			}
			output := t.TempDir()

			_, err := execute(t, "-C", project, "-o", output)
			require.ErrorIs(t, err, tt.wantErr)

			entries, err := os.ReadDir(output)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestBuild_UnknownFormat(t *testing.T) {
	_, err := execute(t, "-C", testutil.WriteProject(t), "-o", t.TempDir(), "-f", "rar")
	assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
}

func TestLayoutCmd(t *testing.T) {
	out, err := execute(t, "layout")
	require.NoError(t, err)

	parsed, err := layout.Parse(strings.NewReader(out))
	require.NoError(t, err)
	def, err := layout.Default()
	require.NoError(t, err)
	assert.Equal(t, def, parsed)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ccpack version "+Version)
}

func TestParseFormats(t *testing.T) {
	formats, err := parseFormats([]string{"zip,tgz", "zip"})
	require.NoError(t, err)
	assert.Equal(t, []archive.Format{archive.FormatZip, archive.FormatTarGz}, formats)

	formats, err = parseFormats(nil)
	require.NoError(t, err)
	assert.Equal(t, archive.AllFormats(), formats)
}

func TestResolveModTime(t *testing.T) {
	env := func(value string) func(string) string {
		return func(key string) string {
			if key == SourceDateEpochEnv {
				return value
			}
			return ""
		}
	}

	stamp, err := resolveModTime(true, 1715949000, env("1"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 17, 12, 30, 0, 0, time.UTC), stamp)

	stamp, err = resolveModTime(false, 0, env("1715949000"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 17, 12, 30, 0, 0, time.UTC), stamp)

	stamp, err = resolveModTime(false, 0, env(""))
	require.NoError(t, err)
	assert.True(t, stamp.IsZero())

	_, err = resolveModTime(true, 0, env(""))
	assert.ErrorIs(t, err, errors.ErrConfigValidation)

	_, err = resolveModTime(false, 0, env("yesterday"))
	assert.ErrorIs(t, err, errors.ErrConfigValidation)
}

func ptr(s string) *string { return &s }
