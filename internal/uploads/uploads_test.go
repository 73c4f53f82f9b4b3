package uploads

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "static", "uploads")
	_, err := NewFileStore(dir, "/static/uploads")
	assert.NoError(t, err)
	assert.DirExists(t, dir, "expected upload dir to be created")
}

func TestFileStore_Save(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, "/static/uploads")
	assert.NoError(t, err)

	url, err := fs.Save("avatar.png", strings.NewReader("png-bytes"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/static/uploads/"), "expected url under the public prefix, got %s", url)
	assert.True(t, strings.HasSuffix(url, "_avatar.png"), "expected url to keep the original filename, got %s", url)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	assert.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestFileStore_SaveStripsPath(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, "/static/uploads")
	assert.NoError(t, err)

	url, err := fs.Save("../../etc/passwd", strings.NewReader("x"))
	assert.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "_passwd"), "expected path components to be stripped, got %s", url)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1, "expected file to land inside the store dir")
}
