// Package objectstorage stores raw upload blobs keyed by content hash.
package objectstorage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("objectstorage: object not found")

type Object struct {
	Data []byte
	Mime string
}

type FileStorage interface {
	Upload(ctx context.Context, key string, data []byte) error
	GetObject(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

const (
	DRIVER_S3    = "s3"
	DRIVER_LOCAL = "local"
)
