package cli

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glorpus-work/ccpack/pkg/archive"
	"github.com/glorpus-work/ccpack/pkg/config"
	"github.com/glorpus-work/ccpack/pkg/errors"
	"github.com/glorpus-work/ccpack/pkg/layout"
)

// SourceDateEpochEnv is the reproducible-builds timestamp variable.
const SourceDateEpochEnv = "SOURCE_DATE_EPOCH"

// minModTime is the earliest time a zip entry can carry.
var minModTime = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// loadRelease reads the tool config and the layout. Both are validated
// before any archive is opened.
func loadRelease(opts *Options) (*config.ToolConfig, *layout.Layout, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = filepath.Join(opts.ProjectDir, config.DefaultFilename)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load tool config")
	}

	l, err := loadLayout(opts)
	if err != nil {
		return nil, nil, err
	}

	return cfg, l, nil
}

func loadLayout(opts *Options) (*layout.Layout, error) {
	if opts.LayoutPath == "" {
		return layout.Default()
	}
	l, err := layout.Load(opts.LayoutPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load layout")
	}
	return l, nil
}

// parseFormats turns the --format values into archive formats, dropping
// duplicates. Values may be comma separated.
func parseFormats(values []string) ([]archive.Format, error) {
	var formats []archive.Format
	seen := make(map[archive.Format]bool)
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			format, err := archive.ParseFormat(part)
			if err != nil {
				return nil, err
			}
			if seen[format] {
				continue
			}
			seen[format] = true
			formats = append(formats, format)
		}
	}
	if len(formats) == 0 {
		return archive.AllFormats(), nil
	}
	return formats, nil
}

// resolveModTime picks the entry timestamp: --mtime if set, then
// $SOURCE_DATE_EPOCH, then now. The zero time means now.
func resolveModTime(flagSet bool, flagValue int64, getenv func(string) string) (time.Time, error) {
	var stamp time.Time
	switch {
	case flagSet:
		stamp = time.Unix(flagValue, 0).UTC()
	case getenv(SourceDateEpochEnv) != "":
		seconds, err := strconv.ParseInt(strings.TrimSpace(getenv(SourceDateEpochEnv)), 10, 64)
		if err != nil {
			return time.Time{}, errors.Wrapf(errors.ErrConfigValidation, "%s: %v", SourceDateEpochEnv, err)
		}
		stamp = time.Unix(seconds, 0).UTC()
	default:
		return time.Time{}, nil
	}

	if stamp.Before(minModTime) {
		return time.Time{}, errors.Wrapf(errors.ErrConfigValidation,
			"timestamp %s is before %s", stamp.Format(time.RFC3339), minModTime.Format(time.RFC3339))
	}
	return stamp, nil
}
