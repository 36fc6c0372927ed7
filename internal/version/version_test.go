package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	v, sha, bt := Version, GitSHA, BuildTime
	defer func() { Version, GitSHA, BuildTime = v, sha, bt }()

	Version, GitSHA, BuildTime = "v1.2.0", "abc123", "2026-01-01T00:00:00Z"
	assert.Equal(t, "imuplot v1.2.0 (abc123, built 2026-01-01T00:00:00Z)", String())
}
