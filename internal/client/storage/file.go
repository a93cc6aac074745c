package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/greenkeeper/internal/common"
	"github.com/dmitrijs2005/greenkeeper/internal/filex"
)

type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) ReadBytes(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return filex.ReadFileIfExists(b.path)
}

func (b *FileBackend) WriteBytes(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return filex.WriteFileAtomic(b.path, data, 0o600)
}

func (b *FileBackend) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return filex.RemoveIfExists(b.path)
}

func (b *FileBackend) SavedAt(ctx context.Context) (time.Time, error) {
	fi, err := os.Stat(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, common.ErrorNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime().UTC(), nil
}
