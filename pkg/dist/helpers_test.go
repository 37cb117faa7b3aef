package dist

import (
	"testing"
	"time"

	"github.com/glorpus-work/ccpack/pkg/config"
	"github.com/glorpus-work/ccpack/pkg/layout"
	"github.com/stretchr/testify/require"
)

var testStamp = time.Date(2024, 5, 17, 12, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testStamp }

func testRelease(t *testing.T) (*config.ToolConfig, *layout.Layout) {
	t.Helper()
	l, err := layout.Default()
	require.NoError(t, err)
	return &config.ToolConfig{Name: "ExampleMods", Version: "1.2.3"}, l
}
