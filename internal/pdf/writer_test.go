package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Placeholder(t *testing.T) {
	data := Placeholder("")
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-1.4")))
	assert.True(t, bytes.HasSuffix(data, []byte("%%EOF\n")))
	assert.Contains(t, string(data), "/MediaBox [0 0 595 842]")

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, 1, r.NumPage())

	text, err := r.Page(1).GetPlainText(nil)
	require.NoError(t, err)
	assert.Contains(t, text, DefaultPlaceholderText)
}

func TestBuild_EscapesStrings(t *testing.T) {
	data := Build([]string{`a (b) c\d`}, "x)y")
	assert.Contains(t, string(data), `(a \(b\) c\\d) Tj`)
	assert.Contains(t, string(data), `/Title (x\)y)`)
}

func TestWriter_Trim(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/in/form.pdf", Build([]string{"one", "two", "three"}, ""))

	w := NewWriter(fs)
	require.NoError(t, w.Trim(context.Background(), "/in/form.pdf", "/out/sub/form.pdf", 2))

	n, err := w.PageCount("/out/sub/form.pdf")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	doc, err := NewReader(fs, 0, nil).ReadDocument(context.Background(), "/out/sub/form.pdf")
	require.NoError(t, err)
	require.Equal(t, 2, doc.Len())
	assert.Contains(t, doc.Page(0).Text, "one")
	assert.Contains(t, doc.Page(1).Text, "two")

	assertNoTempFiles(t, fs, "/out/sub")
}

func TestWriter_TrimBounds(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/in/form.pdf", Build([]string{"one", "two"}, ""))
	w := NewWriter(fs)

	assert.Error(t, w.Trim(context.Background(), "/in/form.pdf", "/out/a.pdf", 0))
	assert.Error(t, w.Trim(context.Background(), "/in/form.pdf", "/out/a.pdf", 3))
	assert.Error(t, w.Trim(context.Background(), "/in/missing.pdf", "/out/a.pdf", 1))

	exists, err := afero.Exists(fs, "/out/a.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWriter_WritePlaceholder(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)

	require.NoError(t, w.WritePlaceholder(context.Background(), "/out/empty.pdf", "Withheld"))

	n, err := w.PageCount("/out/empty.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	text, err := NewReader(fs, 0, nil).FirstPageText(context.Background(), "/out/empty.pdf")
	require.NoError(t, err)
	assert.Contains(t, text, "Withheld")
	assertNoTempFiles(t, fs, "/out")
}

func TestWriter_CopyAndText(t *testing.T) {
	fs := afero.NewMemMapFs()
	src := Build([]string{"one"}, "")
	writeFile(t, fs, "/in/a.pdf", src)
	w := NewWriter(fs)

	require.NoError(t, w.Copy(context.Background(), "/in/a.pdf", "/out/a.pdf"))
	got, err := afero.ReadFile(fs, "/out/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, src, got)

	require.NoError(t, w.WriteText(context.Background(), "/text/a.txt", "kept"))
	require.NoError(t, w.WriteText(context.Background(), "/text/a.txt", "replaced"))
	got, err = afero.ReadFile(fs, "/text/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "replaced", string(got))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, w.Copy(ctx, "/in/a.pdf", "/out/b.pdf"), context.Canceled)
}

func assertNoTempFiles(t *testing.T, fs afero.Fs, dir string) {
	t.Helper()
	entries, err := afero.ReadDir(fs, dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}
