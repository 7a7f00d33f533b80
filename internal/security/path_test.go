package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPathValidatorRequiresDirectory(t *testing.T) {
	_, err := NewPathValidator("")
	assert.Error(t, err)
}

func TestNormalizePathResolvesRelativeToConfiguredDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))

	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	got, err := v.NormalizePath("a.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.txt"), got)
}

func TestValidatePathRejectsEscapes(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()

	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	assert.NoError(t, v.ValidatePath(filepath.Join(dir, "doc.txt")))
	assert.NoError(t, v.ValidatePath(dir))

	err = v.ValidatePath(filepath.Join(outside, "doc.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside configured directory")

	_, err = v.NormalizePath(filepath.Join(dir, "..", "escape.txt"))
	assert.Error(t, err)
}

func TestValidatePathSkipsWhenDirectoryMissing(t *testing.T) {
	v, err := NewPathValidator(filepath.Join(t.TempDir(), "not-created-yet"))
	require.NoError(t, err)

	assert.NoError(t, v.ValidatePath("/anywhere/doc.txt"))
}

func TestValidatePathResolvesSymlinkedEscape(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	target := filepath.Join(outside, "secret.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	link := filepath.Join(dir, "alias.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	err := (&PathValidator{configuredDirectory: dir}).ValidatePath(link)
	assert.Error(t, err)
}
