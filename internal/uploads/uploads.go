package uploads

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"
)

// FileStore writes uploaded files to a local directory served as static
// content. Files are named "{unix_seconds}_{original filename}"; names can
// collide for uploads landing in the same second, which is accepted.
type FileStore struct {
	dir       string
	urlPrefix string
}

func NewFileStore(dir, urlPrefix string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return &FileStore{dir: dir, urlPrefix: urlPrefix}, nil
}

// Save writes r to disk and returns the public URL path of the stored file.
func (fs *FileStore) Save(filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d_%s", time.Now().Unix(), filepath.Base(filename))

	f, err := os.Create(filepath.Join(fs.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", err
	}

	return path.Join(fs.urlPrefix, name), nil
}
