package file

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Writer writes wind report files into a directory.
// It implements analyzer.Writer.
type Writer struct {
	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

// NewWriter creates a Writer rooted at dir. The directory is created on first
// write if it does not exist.
func NewWriter(fs afero.Fs, dir string, logger *slog.Logger) *Writer {
	return &Writer{fs: fs, dir: dir, logger: logger}
}

// Write creates or truncates dir/filename and writes each line followed by a
// newline.
func (w *Writer) Write(ctx context.Context, filename string, lines []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if filename == "" || filepath.Base(filename) != filename {
		return fmt.Errorf("invalid filename %q", filename)
	}
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	path := filepath.Join(w.dir, filename)
	if err := afero.WriteFile(w.fs, path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.logger.Debug("file written", "path", path, "lines", len(lines))
	return nil
}
