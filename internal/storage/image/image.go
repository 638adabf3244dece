// Package image stores uploaded rental pictures on disk.
package image

import (
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrEmptyFile is returned for uploads without content.
	ErrEmptyFile = errors.New("uploaded file is empty")

	// ErrNoFile is returned when no file header is given.
	ErrNoFile = errors.New("no file uploaded")

	// ErrNotStored is returned by Remove for paths outside the store.
	ErrNotStored = errors.New("path is not a stored upload")
)

// Store writes uploads into Dir. Stored files are reachable below PublicPath.
type Store struct {
	Dir        string
	PublicPath string
}

// New creates the upload directory if needed.
func New(dir, publicPath string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, errors.Wrapf(err, "failed to create upload directory %s", dir)
	}

	return &Store{Dir: dir, PublicPath: "/" + strings.Trim(publicPath, "/")}, nil
}

// FileName returns the stored name for an uploaded file: a random uuid joined with the base name.
func FileName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "upload"
	}

	return uuid.NewString() + "_" + base
}

// Save copies the upload into the store and returns its public url path.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNoFile
	}

	if fh.Size <= 0 {
		return "", ErrEmptyFile
	}

	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "failed to open upload")
	}
	defer src.Close()

	name := FileName(fh.Filename)

	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", errors.Wrap(err, "failed to create stored file")
	}

	if _, err = io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())

		return "", errors.Wrap(err, "failed to write stored file")
	}

	if err = dst.Close(); err != nil {
		return "", errors.Wrap(err, "failed to close stored file")
	}

	return path.Join(s.PublicPath, name), nil
}

// Remove deletes a file returned by Save.
func (s *Store) Remove(publicPath string) error {
	name, ok := strings.CutPrefix(publicPath, s.PublicPath+"/")
	if !ok || name == "" || strings.ContainsAny(name, "/\\") || name == ".." {
		return errors.Wrap(ErrNotStored, publicPath)
	}

	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil {
		return errors.Wrap(err, "failed to remove stored file")
	}

	return nil
}
