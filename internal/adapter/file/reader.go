// Package file reads telegram files and writes wind report files through an
// afero filesystem.
package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/weather-telegram/internal/domain"
	"github.com/spf13/afero"
)

// Reader loads reports from a telegram file.
// It implements pipeline.Loader.
type Reader struct {
	fs     afero.Fs
	path   string
	strict bool
	logger *slog.Logger

	// OnParseError is called for every skipped line in lenient mode.
	OnParseError func(err error)
}

// NewReader creates a Reader for path. In strict mode the first malformed line
// aborts the load; otherwise malformed lines are logged and skipped.
func NewReader(fs afero.Fs, path string, strict bool, logger *slog.Logger) *Reader {
	return &Reader{fs: fs, path: path, strict: strict, logger: logger}
}

// Load parses every non-blank line of the file in order.
func (r *Reader) Load(ctx context.Context) ([]domain.Report, error) {
	f, err := r.fs.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open telegram file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only

	var reports []domain.Report
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		report, err := domain.ParseTelegram(line)
		if err != nil {
			var pe *domain.ParseError
			if errors.As(err, &pe) {
				pe.Line = lineNo
			}
			if r.strict {
				return nil, fmt.Errorf("parse %s: %w", r.path, err)
			}
			r.logger.Warn("malformed telegram, skipping line", "path", r.path, "line", lineNo, "error", err)
			if r.OnParseError != nil {
				r.OnParseError(err)
			}
			continue
		}
		reports = append(reports, report)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read telegram file: %w", err)
	}

	r.logger.Info("telegrams loaded", "path", r.path, "reports", len(reports))
	return reports, nil
}
