package service

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathValidator(t *testing.T) {
	v, err := NewPathValidator(afero.NewMemMapFs(), "/data/in/")
	require.NoError(t, err)
	assert.Equal(t, "/data/in", v.GetConfiguredDirectory())

	tests := []struct {
		path   string
		within bool
	}{
		{"/data/in", true},
		{"/data/in/a.pdf", true},
		{"/data/in/sub/../b.pdf", true},
		{"/data/in/../secret.pdf", false},
		{"/data/input/a.pdf", false},
		{"/etc/passwd", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := v.ValidatePath(tt.path)
			if tt.within {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrPathOutside)
			}
		})
	}

	assert.Error(t, v.ValidatePath(""))

	_, err = NewPathValidator(afero.NewMemMapFs(), "")
	assert.Error(t, err)
}

func TestTextPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		src    string
		suffix string
		want   string
	}{
		{"nested", "/in", "/in/batch/2023/form.pdf", "-clean", "/text/batch-clean/2023/form.txt"},
		{"one directory", "/in", "/in/batch/form.PDF", "-clean", "/text/batch-clean/form.txt"},
		{"top level", "/in", "/in/form.pdf", "-clean", "/text/form.txt"},
		{"custom suffix", "/in", "/in/a/form.pdf", "_txt", "/text/a_txt/form.txt"},
		{"outside input", "/in", "/other/form.pdf", "-clean", "/text/form.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TextPath(tt.input, "/text", tt.src, tt.suffix)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := TextPath("/in", "", "/in/a.pdf", "-clean")
	assert.Error(t, err)
}

func TestMirrorPath(t *testing.T) {
	got, err := MirrorPath("/in", "/out", "/in/a/b.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/out/a/b.pdf", got)

	got, err = MirrorPath("", "/out", "/in/a/b.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/out/b.pdf", got)

	_, err = MirrorPath("/in", "", "/in/a.pdf")
	assert.Error(t, err)
}
