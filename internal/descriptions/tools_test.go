package descriptions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetToolDescription(t *testing.T) {
	for _, name := range GetAllToolNames() {
		desc := GetToolDescription(name)
		assert.NotEmpty(t, desc, name)
		assert.True(t, strings.HasPrefix(desc, Summary(name)), name)
		assert.NotContains(t, Summary(name), "\n", name)
	}

	assert.Equal(t, "Tool description not available", GetToolDescription("missing"))
	assert.Equal(t, "Tool description not available", Summary("missing"))
}

func TestGetAllToolNames(t *testing.T) {
	names := GetAllToolNames()
	assert.Len(t, names, 6)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, DesensitizeFileTool)
}
