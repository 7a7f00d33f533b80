package extract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTextFile(t *testing.T) {
	path := writeTemp(t, "agreement.txt", "Hello [NAME],\nyour amount is $[Amount].\n")

	src, err := NewReader(1024 * 1024).ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "agreement.txt", src.FileName)
	assert.Equal(t, path, src.Path)
	assert.Contains(t, src.Content, "[NAME]")
	assert.Equal(t, int64(len(src.Content)), src.Size)
	assert.Zero(t, src.Pages)
}

func TestReadTextFileNormalizesLineEndings(t *testing.T) {
	path := writeTemp(t, "windows.txt", "By: ____\r\nName: ____\r\n")

	src, err := NewReader(1024 * 1024).ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, src.Content, "\r")
	assert.Equal(t, "By: ____\nName: ____\n", src.Content)
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()
	small := NewReader(10)

	tests := []struct {
		name    string
		path    string
		reader  *Reader
		wantErr string
	}{
		{"empty path", "", small, "path cannot be empty"},
		{"missing file", filepath.Join(dir, "nope.txt"), small, "does not exist"},
		{"directory", dir, small, "directory"},
		{"too large", writeTemp(t, "big.txt", strings.Repeat("x", 100)), small, "file too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.reader.ReadFile(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadFileTreatsUnknownExtensionAsText(t *testing.T) {
	path := writeTemp(t, "notes.md", "Prepared for [CLIENT NAME]\n")

	src, err := NewReader(1024).ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Prepared for [CLIENT NAME]\n", src.Content)
}

func TestReadFileRejectsEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.txt", "")

	_, err := NewReader(1024).ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file is empty")
}

func TestReadPDFRejectsNonPDFContent(t *testing.T) {
	path := writeTemp(t, "fake.pdf", "this is not a pdf")

	_, err := NewReader(1024).ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PDF file")
}

func TestReadTextFileTruncatesAtTextLimit(t *testing.T) {
	r := NewReader(1024 * 1024)
	r.maxTextSize = 16
	path := writeTemp(t, "long.txt", strings.Repeat("a", 64))

	src, err := r.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, src.Content, 16)
}
