package version_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/pysmell/internal/version"
)

func TestShort(t *testing.T) {
	assert.Equal(t, version.Version, version.Short())
	assert.NotEmpty(t, version.Short())
}

func TestInfo(t *testing.T) {
	lines := strings.Split(version.Info(), "\n")
	require.Len(t, lines, 5)

	prefixes := []string{"pysmell ", "Commit:", "Built:", "Go:", "OS/Arch:"}
	for i, prefix := range prefixes {
		assert.True(t, strings.HasPrefix(lines[i], prefix), "line %d: %q", i+1, lines[i])
	}

	assert.Equal(t, "pysmell "+version.Version, lines[0])
	assert.Equal(t, "Commit: "+version.Commit, lines[1])
	assert.Equal(t, "Built: "+version.Date+" by "+version.BuiltBy, lines[2])
	assert.Equal(t, "Go: "+runtime.Version(), lines[3])
	assert.Equal(t, "OS/Arch: "+runtime.GOOS+"/"+runtime.GOARCH, lines[4])
}
