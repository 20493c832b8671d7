package pdf

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/in/folder.pdf", 0o755))
	writeFile(t, fs, "/in/ok.pdf", Build([]string{"hello"}, ""))
	writeFile(t, fs, "/in/notes.txt", []byte("%PDF-1.4 but not named like one"))
	writeFile(t, fs, "/in/fake.pdf", []byte("just some text"))
	writeFile(t, fs, "/in/empty.pdf", nil)
	writeFile(t, fs, "/in/big.pdf", append([]byte("%PDF-1.4\n"), make([]byte, 2048)...))

	v := NewValidator(fs, 1024)

	tests := []struct {
		name    string
		path    string
		wantErr error
		errText string
	}{
		{name: "valid pdf", path: "/in/ok.pdf"},
		{name: "empty path", path: "", errText: "path cannot be empty"},
		{name: "missing file", path: "/in/missing.pdf", errText: "does not exist"},
		{name: "directory", path: "/in/folder.pdf", errText: "directory"},
		{name: "wrong extension", path: "/in/notes.txt", wantErr: ErrNotPDF},
		{name: "missing header", path: "/in/fake.pdf", wantErr: ErrNotPDF},
		{name: "empty file", path: "/in/empty.pdf", wantErr: ErrEmptyFile},
		{name: "too large", path: "/in/big.pdf", wantErr: ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := v.ValidateFile(tt.path)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				require.NoError(t, err)
				assert.True(t, info.Size() > 0)
				assert.True(t, v.IsValidPDF(tt.path))
			}
		})
	}
}

func TestValidator_NoSizeLimit(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/big.PDF", append([]byte("%PDF-1.4\n"), make([]byte, 4096)...))

	_, err := NewValidator(fs, 0).ValidateFile("/big.PDF")
	assert.NoError(t, err)
}
