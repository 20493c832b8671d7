package pdf

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/spf13/afero"
)

// Writer produces output PDFs with atomic replace semantics: content is
// written to a temporary file in the destination directory and renamed
// into place, so readers never observe a partial file.
type Writer struct {
	fs afero.Fs
}

// NewWriter creates a new PDF writer on fs
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs}
}

func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Copy copies src to dst unchanged
func (w *Writer) Copy(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := w.fs.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer in.Close()

	return w.writeAtomic(dst, func(out io.Writer) error {
		_, err := io.Copy(out, in)
		return err
	})
}

// Trim writes the first keepPages pages of src to dst. keepPages must be
// between one and the page count of src.
func (w *Writer) Trim(ctx context.Context, src, dst string, keepPages int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if keepPages < 1 {
		return fmt.Errorf("cannot trim to %d pages", keepPages)
	}

	in, err := w.fs.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer in.Close()

	conf := newConfiguration()
	total, err := api.PageCount(in, conf)
	if err != nil {
		return fmt.Errorf("failed to read PDF context: %w", err)
	}
	if keepPages > total {
		return fmt.Errorf("cannot keep %d pages of %d", keepPages, total)
	}
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("cannot rewind file: %w", err)
	}

	selected := []string{fmt.Sprintf("1-%d", keepPages)}
	return w.writeAtomic(dst, func(out io.Writer) error {
		if err := api.Trim(in, out, selected, newConfiguration()); err != nil {
			return fmt.Errorf("failed to trim PDF: %w", err)
		}
		return nil
	})
}

// WritePlaceholder writes a single A4 page carrying label to dst
func (w *Writer) WritePlaceholder(ctx context.Context, dst, label string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.writeAtomic(dst, func(out io.Writer) error {
		_, err := out.Write(Placeholder(label))
		return err
	})
}

// WriteText writes text to dst through the same atomic path as PDFs
func (w *Writer) WriteText(ctx context.Context, dst, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.writeAtomic(dst, func(out io.Writer) error {
		_, err := io.WriteString(out, text)
		return err
	})
}

// PageCount returns the page count of path as seen by pdfcpu
func (w *Writer) PageCount(path string) (int, error) {
	f, err := w.fs.Open(path)
	if err != nil {
		return 0, fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	n, err := api.PageCount(f, newConfiguration())
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF context: %w", err)
	}
	return n, nil
}

func (w *Writer) writeAtomic(dst string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(dst)
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}

	tmp, err := afero.TempFile(w.fs, dir, "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return fmt.Errorf("cannot create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = w.fs.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot close temporary file: %w", err)
	}
	if err := w.fs.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("cannot set file mode: %w", err)
	}
	if err := w.fs.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("cannot move file into place: %w", err)
	}
	return nil
}
