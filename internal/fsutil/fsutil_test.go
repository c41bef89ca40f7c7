package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileScoped_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0o600))

	b, err := ReadFileScoped(p)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestReadFileScoped_RejectsInvalidPath(t *testing.T) {
	for _, p := range []string{"", ".", string(filepath.Separator)} {
		_, err := ReadFileScoped(p)
		assert.Error(t, err, "path %q", p)
	}
}

func TestReadFileScoped_NonexistentFile(t *testing.T) {
	_, err := ReadFileScoped(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, Exists(dir))
	assert.False(t, Exists(filepath.Join(dir, "nope")))
}

func TestResolve_FollowsSymlinks(t *testing.T) {
	dir := Resolve(t.TempDir())
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	assert.Equal(t, target, Resolve(link))
}

func TestResolve_MissingPathStaysAbsolute(t *testing.T) {
	dir := t.TempDir()
	got := Resolve(filepath.Join(dir, "missing"))
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "missing", filepath.Base(got))
}

func TestRemoveIfExists(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(p, nil, 0o600))

	require.NoError(t, RemoveIfExists(p))
	assert.False(t, Exists(p))
	assert.NoError(t, RemoveIfExists(p))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.json")

	require.NoError(t, WriteFileAtomic(p, []byte("one"), 0o644))
	require.NoError(t, WriteFileAtomic(p, []byte("two"), 0o644))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "out.json"), []byte("x"), 0o644)
	assert.Error(t, err)
}
