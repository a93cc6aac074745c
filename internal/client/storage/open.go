package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/greenkeeper/internal/client/config"
	"github.com/dmitrijs2005/greenkeeper/internal/client/localdb"
	"github.com/dmitrijs2005/greenkeeper/internal/client/store"
	"github.com/dmitrijs2005/greenkeeper/internal/filex"
)

var (
	initDatabase = localdb.InitDatabase
	newS3API     = func(ctx context.Context, settings S3Settings) (S3API, error) {
		return NewS3Client(ctx, settings)
	}
)

// Open builds the backend selected by cfg. When cfg.Encrypt is set the
// backend is wrapped with EncryptedBackend using passphrase. The returned
// close function releases the database handle and wipes the key material.
func Open(ctx context.Context, cfg *config.Config, passphrase []byte) (store.Backend, func() error, error) {
	var (
		backend store.Backend
		closers []func() error
	)

	switch cfg.Backend {
	case config.BackendSQLite:
		dir, err := filex.EnsureDir(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("prepare data dir: %w", err)
		}
		cfg.DataDir = dir

		db, err := initDatabase(ctx, cfg.DatabasePath())
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		backend = NewSQLiteBackend(db, DefaultProfileKey)
		closers = append(closers, closeDB(db))

	case config.BackendFile:
		dir, err := filex.EnsureDir(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("prepare data dir: %w", err)
		}
		cfg.DataDir = dir
		backend = NewFileBackend(cfg.ProfilePath())

	case config.BackendS3:
		if cfg.S3Bucket == "" || cfg.S3Key == "" {
			return nil, nil, errors.New("s3 backend needs a bucket and a key")
		}
		client, err := newS3API(ctx, S3Settings{
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
		if err != nil {
			return nil, nil, err
		}
		backend = NewS3Backend(client, cfg.S3Bucket, cfg.S3Key)

	case config.BackendMemory:
		backend = NewMemoryBackend()

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	if cfg.Encrypt {
		if len(passphrase) == 0 {
			closeAll(closers)
			return nil, nil, errors.New("encryption enabled but no passphrase given")
		}
		enc := NewEncryptedBackend(backend, passphrase)
		backend = enc
		closers = append(closers, enc.Close)
	}

	return backend, func() error { return closeAll(closers) }, nil
}

func closeDB(db *sql.DB) func() error {
	return func() error { return db.Close() }
}

func closeAll(closers []func() error) error {
	var first error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
