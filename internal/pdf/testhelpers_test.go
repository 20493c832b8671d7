package pdf

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs afero.Fs, path string, data []byte) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, data, 0o644))
}
