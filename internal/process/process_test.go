// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package process

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quotefmt/pkg/types"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFile(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "doc.txt", `He said "hi" and "bye".`)

	var out bytes.Buffer
	report, err := File(path, Options{Backup: true}, &out)
	require.NoError(t, err)

	assert.Equal(t, types.FileReport{
		Path:      path,
		Quotes:    4,
		Left:      2,
		Right:     2,
		Residual:  0,
		Succeeded: true,
	}, report)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "He said “hi” and “bye”.", string(data))

	assert.Contains(t, out.String(), "backup created: "+path+".bak")
}

func TestFileFoldsVariants(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "doc.md", "„quoted‟ and ＂more＂")

	var out bytes.Buffer
	report, err := File(path, Options{}, &out)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Quotes)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "“quoted” and “more”", string(data))
}

func TestFileNotFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.txt")

	var out bytes.Buffer
	report, err := File(path, Options{Backup: true}, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, report.Succeeded)

	// No backup may be attempted for a missing file.
	_, statErr := os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileDirectoryIsNotFound(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "docs.txt")
	require.NoError(t, os.Mkdir(sub, 0o755))

	var out bytes.Buffer
	_, err := File(sub, Options{}, &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileUnsupportedType(t *testing.T) {
	original := `content with "quotes"`
	path := writeTestFile(t, t.TempDir(), "notes.pdf", original)

	var out bytes.Buffer
	_, err := File(path, Options{Backup: true}, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), ".pdf")

	// The file must be untouched and no backup created.
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, original, string(data))
	_, statErr := os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(statErr))
}

func TestFileExtensionCaseInsensitive(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "DOC.TXT", `"x"`)

	var out bytes.Buffer
	report, err := File(path, Options{}, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Quotes)
}

func TestFileNoBackup(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "doc.rst", `"x"`)

	var out bytes.Buffer
	_, err := File(path, Options{Backup: false}, &out)
	require.NoError(t, err)

	_, statErr := os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(statErr))
	assert.NotContains(t, out.String(), "backup created")
}

func TestFileCustomBackupSuffix(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "doc.org", `"x"`)

	var out bytes.Buffer
	_, err := File(path, Options{Backup: true, BackupSuffix: ".orig"}, &out)
	require.NoError(t, err)

	data, readErr := os.ReadFile(path + ".orig")
	require.NoError(t, readErr)
	assert.Equal(t, `"x"`, string(data))
}

func TestFileInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	content := []byte{'h', 'i', 0xff, 0xfe, '"'}
	require.NoError(t, os.WriteFile(path, content, 0o644))

	var out bytes.Buffer
	_, err := File(path, Options{}, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRead)

	// No write happens after a read failure.
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, content, data)
}

func TestFilePreservesMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.tex")
	require.NoError(t, os.WriteFile(path, []byte(`"x"`), 0o600))

	var out bytes.Buffer
	_, err := File(path, Options{}, &out)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.tex", `"alpha"`)
	b := writeTestFile(t, dir, "b.pdf", "not processed")
	c := writeTestFile(t, dir, "c.txt", `"gamma"`)

	var out, errw bytes.Buffer
	result, reports := Batch([]string{a, b, c}, Options{Backup: true}, &out, &errw)

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())

	require.Len(t, reports, 3)
	assert.True(t, reports[0].Succeeded)
	assert.False(t, reports[1].Succeeded)
	assert.Contains(t, reports[1].Message, "unsupported file type")
	assert.True(t, reports[2].Succeeded)

	// A failed file must not stop later files from being processed.
	data, err := os.ReadFile(c)
	require.NoError(t, err)
	assert.Equal(t, "“gamma”", string(data))

	assert.Contains(t, out.String(), "Processing: "+a)
	assert.Contains(t, out.String(), "2/3 files succeeded")
	assert.Contains(t, errw.String(), "error:")
	assert.NotContains(t, out.String(), "error:")
}

func TestBatchAllSucceed(t *testing.T) {
	dir := t.TempDir()
	a := writeTestFile(t, dir, "a.md", `"one"`)
	b := writeTestFile(t, dir, "b.markdown", `no quotes`)

	var out, errw bytes.Buffer
	result, _ := Batch([]string{a, b}, Options{}, &out, &errw)

	assert.False(t, result.HasFailures())
	assert.Contains(t, out.String(), "2/2 files succeeded")
	assert.Empty(t, errw.String())
}

func TestSupportedExtensionsSorted(t *testing.T) {
	exts := SupportedExtensions()
	assert.Equal(t, []string{".markdown", ".md", ".org", ".rst", ".tex", ".txt"}, exts)
	assert.True(t, strings.HasPrefix(exts[0], "."))
}
