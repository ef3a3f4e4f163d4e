package bistro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullVersionInfo(t *testing.T) {
	saved := BuildInfo
	defer func() { BuildInfo = saved }()

	info := FullVersionInfo()
	assert.Contains(t, info, "Bistro "+Version)
	assert.Contains(t, info, "Schema Version: "+SchemaVersion)
	assert.NotContains(t, info, "Git Commit")

	SetBuildInfo("abc123", "2024-01-01", "")
	info = FullVersionInfo()
	assert.Contains(t, info, "Git Commit: abc123")
	assert.Contains(t, info, "Build Date: 2024-01-01")
	assert.Contains(t, info, "Go Version: "+saved.GoVersion)
}

func TestVersionInfo(t *testing.T) {
	assert.Equal(t, "Bistro "+Version+" (schema "+SchemaVersion+")", VersionInfo())
}
