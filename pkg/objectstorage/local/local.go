// Package local is a filesystem-backed blob store for development and tests.
package local

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/corpora-ai/corpora/pkg/objectstorage"
)

type Storage struct {
	root string
}

func New(root string) (*Storage, error) {
	if root == "" {
		return nil, errors.New("local storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Storage{root: root}, nil
}

func (s *Storage) path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(key, "/")))
}

func (s *Storage) Upload(ctx context.Context, key string, data []byte) error {
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

func (s *Storage) GetObject(ctx context.Context, key string) (*objectstorage.Object, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, objectstorage.ErrNotFound
		}
		return nil, err
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return &objectstorage.Object{Data: data, Mime: http.DetectContentType(head)}, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
