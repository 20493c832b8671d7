package pdf

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSearchFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/in/sub/deeper", 0o755))
	require.NoError(t, fs.MkdirAll("/in/.hidden", 0o755))
	for _, p := range []string{
		"/in/a.pdf",
		"/in/B.PDF",
		"/in/notes.txt",
		"/in/sub/c.pdf",
		"/in/sub/deeper/d.Pdf",
		"/in/.hidden/e.pdf",
	} {
		writeFile(t, fs, p, []byte("%PDF-1.4\n"))
	}
	return fs
}

func paths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestSearch_FindPDFs(t *testing.T) {
	s := NewSearch(newSearchFs(t))

	files, err := s.FindPDFs(context.Background(), "/in", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"/in/B.PDF", "/in/a.pdf"}, paths(files))
	assert.Equal(t, "a.pdf", files[1].Name)

	files, err = s.FindPDFs(context.Background(), "/in/", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"/in/B.PDF", "/in/a.pdf", "/in/sub/c.pdf", "/in/sub/deeper/d.Pdf"}, paths(files))

	n, err := s.CountPDFs(context.Background(), "/in", true)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestSearch_Errors(t *testing.T) {
	s := NewSearch(newSearchFs(t))

	_, err := s.FindPDFs(context.Background(), "", false)
	assert.Error(t, err)

	_, err = s.FindPDFs(context.Background(), "/missing", false)
	assert.ErrorContains(t, err, "does not exist")

	_, err = s.FindPDFs(context.Background(), "/in/a.pdf", false)
	assert.ErrorContains(t, err, "not a directory")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.FindPDFs(ctx, "/in", true)
	assert.ErrorIs(t, err, context.Canceled)
}
