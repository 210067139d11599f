package filestore

import (
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/trezcool/letscatchup/core"
)

// DiskStorage writes uploads under a local media root and serves them back
// via a static base URL. Existing files are never overwritten.
type DiskStorage struct {
	root    string
	baseURL string
}

var _ core.FileStorage = (*DiskStorage)(nil)

func NewDiskStorage(conf *core.Config) *DiskStorage {
	return &DiskStorage{
		root:    conf.Media.Root,
		baseURL: conf.Media.BaseURL,
	}
}

func (s *DiskStorage) Save(namespace, name string, content io.Reader) (string, error) {
	dir := filepath.Join(s.root, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "filestore.MkdirAll")
	}

	f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", core.ErrFileExists
		}
		return "", errors.Wrap(err, "filestore.OpenFile")
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", errors.Wrap(err, "filestore.Copy")
	}
	return s.PublicURL(namespace, name), nil
}

func (s *DiskStorage) PublicURL(namespace, name string) string {
	return path.Join(s.baseURL, namespace, name)
}

// Root is the directory static file serving should be mounted on.
func (s *DiskStorage) Root() string { return s.root }
