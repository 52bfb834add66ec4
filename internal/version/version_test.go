package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Version, Short())
}

func TestFull(t *testing.T) {
	t.Parallel()

	full := Full()
	assert.Contains(t, full, Version)
	assert.Contains(t, full, Commit)
	assert.Contains(t, full, BuildTime)
}

// TestDefaults checks the placeholder values used when the linker does not override them.
func TestDefaults(t *testing.T) {
	t.Parallel()

	assert.NotEmpty(t, Version)
	assert.Contains(t, Version, ".")
	assert.NotEmpty(t, Commit)
	assert.NotEmpty(t, BuildTime)
}
