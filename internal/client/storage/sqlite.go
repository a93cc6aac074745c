package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/greenkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/greenkeeper/internal/common"
	"github.com/dmitrijs2005/greenkeeper/internal/dbx"
)

// DefaultProfileKey is the metadata key holding the encoded profile.
const DefaultProfileKey = "user_profile"

type SQLiteBackend struct {
	db  *sql.DB
	key string
}

func NewSQLiteBackend(db *sql.DB, key string) *SQLiteBackend {
	if key == "" {
		key = DefaultProfileKey
	}
	return &SQLiteBackend{db: db, key: key}
}

func (b *SQLiteBackend) ReadBytes(ctx context.Context) ([]byte, error) {
	data, err := metadata.NewSQLiteRepository(b.db).Get(ctx, b.key)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

func (b *SQLiteBackend) WriteBytes(ctx context.Context, data []byte) error {
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Set(ctx, b.key, data)
	})
}

func (b *SQLiteBackend) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(b.db).Delete(ctx, b.key)
}

// SavedAt returns common.ErrorNotFound when nothing is stored.
func (b *SQLiteBackend) SavedAt(ctx context.Context) (time.Time, error) {
	return metadata.NewSQLiteRepository(b.db).UpdatedAt(ctx, b.key)
}
