// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package process runs the per-file normalization pipeline: validate,
// back up, read, transform, write back, report. A batch driver iterates
// the pipeline over a list of paths, isolating each file's failure.
package process

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/quotefmt/internal/normalize"
	"github.com/pdiddy/quotefmt/pkg/types"
)

// DefaultBackupSuffix names the pre-transform copy of a file.
const DefaultBackupSuffix = ".bak"

// supportedExtensions is the sole gate for whether a file is processed.
// Comparison is case-insensitive on the suffix.
var supportedExtensions = map[string]bool{
	".tex":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".rst":      true,
	".org":      true,
}

// SupportedExtensions returns the recognized suffixes, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Options control the per-file pipeline.
type Options struct {
	// Backup writes a pre-transform copy before rewriting (default on).
	Backup bool

	// BackupSuffix overrides DefaultBackupSuffix when non-empty.
	BackupSuffix string
}

func (o Options) suffix() string {
	if o.BackupSuffix != "" {
		return o.BackupSuffix
	}
	return DefaultBackupSuffix
}

// File runs the full pipeline on one path and returns its report.
// The returned error wraps exactly one of the package's error
// categories; on error the report carries the path and the message
// but no counts. Progress lines (backup creation) go to w.
func File(path string, opts Options, w io.Writer) (types.FileReport, error) {
	report := types.FileReport{Path: path}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return report, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return report, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedType, ext, strings.Join(SupportedExtensions(), ", "))
	}

	if opts.Backup {
		backupPath := path + opts.suffix()
		if err := backupFile(path, backupPath); err != nil {
			return report, fmt.Errorf("%w: %w", ErrBackup, err)
		}
		fmt.Fprintf(w, "backup created: %s\n", backupPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrRead, err)
	}
	if !utf8.Valid(data) {
		return report, fmt.Errorf("%w: %s is not valid UTF-8", ErrRead, path)
	}

	// The whole file is one buffer: the alternation state spans the file.
	out, stats := normalize.Text(string(data))

	if err := replaceFile(path, []byte(out), info.Mode()); err != nil {
		return report, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	report.Quotes = stats.Quotes
	report.Left = stats.Left
	report.Right = stats.Right
	report.Residual = stats.Residual
	report.Succeeded = true
	return report, nil
}

// BatchResult holds the outcome of one batch run.
type BatchResult struct {
	Succeeded int
	Failed    int
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Succeeded + r.Failed
}

// HasFailures reports whether any file failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

const bannerWidth = 60

// Batch runs File over each path in order. One file's failure does not
// affect the rest: the driver prints the error and moves on. Per-file
// banners and success reports go to out, error lines to errw. The
// returned reports are in input order, one per path.
func Batch(paths []string, opts Options, out, errw io.Writer) (BatchResult, []types.FileReport) {
	var result BatchResult
	reports := make([]types.FileReport, 0, len(paths))
	banner := strings.Repeat("=", bannerWidth)

	for _, path := range paths {
		fmt.Fprintf(out, "\n%s\nProcessing: %s\n%s\n", banner, path, banner)

		report, err := File(path, opts, out)
		if err != nil {
			report.Message = err.Error()
			fmt.Fprintf(errw, "error: %v\n", err)
			result.Failed++
		} else {
			fmt.Fprintf(out, "replacement complete\n")
			fmt.Fprintf(out, "  original quotes:       %d\n", report.Quotes)
			fmt.Fprintf(out, "  left quotes (%c):      %d\n", normalize.Left, report.Left)
			fmt.Fprintf(out, "  right quotes (%c):     %d\n", normalize.Right, report.Right)
			fmt.Fprintf(out, "  residual ASCII quotes: %d\n", report.Residual)
			result.Succeeded++
		}
		reports = append(reports, report)
	}

	fmt.Fprintf(out, "\n%s\n%d/%d files succeeded\n%s\n",
		banner, result.Succeeded, result.Total(), banner)
	return result, reports
}
