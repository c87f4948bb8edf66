package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidFileFormat = errors.New("invalid file format. only .jpg, .jpeg, .png, .webp, .gif are allowed")
	ErrFileSizeExceeded  = errors.New("file size exceeds limit")
)

var allowedExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// FileStore persists uploaded images and returns their public path
type FileStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Remove(publicPath string) error
}

// LocalStore writes uploads under a directory served at URLPrefix
type LocalStore struct {
	dir       string
	urlPrefix string
	maxSize   int64
}

// NewLocalStore creates dir if needed
func NewLocalStore(dir, urlPrefix string, maxSize int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/"), maxSize: maxSize}, nil
}

// Dir is the directory files are written to
func (s *LocalStore) Dir() string { return s.dir }

// Save validates and stores the file under a random name
func (s *LocalStore) Save(fh *multipart.FileHeader) (string, error) {
	if s.maxSize > 0 && fh.Size > s.maxSize {
		return "", ErrFileSizeExceeded
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", ErrInvalidFileFormat
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file on server: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return path.Join(s.urlPrefix, name), nil
}

// Remove deletes a file previously returned by Save. Paths outside the store are ignored.
func (s *LocalStore) Remove(publicPath string) error {
	if !strings.HasPrefix(publicPath, s.urlPrefix+"/") {
		return nil
	}
	name := path.Base(publicPath)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
