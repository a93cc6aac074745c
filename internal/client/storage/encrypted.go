package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/greenkeeper/internal/client/store"
	"github.com/dmitrijs2005/greenkeeper/internal/common"
	"github.com/dmitrijs2005/greenkeeper/internal/cryptox"
)

// EncryptedBackend seals every blob with a passphrase before handing it to
// the wrapped backend.
type EncryptedBackend struct {
	inner      store.Backend
	passphrase []byte
}

// NewEncryptedBackend copies passphrase; the caller may wipe its own copy.
func NewEncryptedBackend(inner store.Backend, passphrase []byte) *EncryptedBackend {
	return &EncryptedBackend{inner: inner, passphrase: append([]byte(nil), passphrase...)}
}

func (b *EncryptedBackend) ReadBytes(ctx context.Context) ([]byte, error) {
	sealed, err := b.inner.ReadBytes(ctx)
	if err != nil || sealed == nil {
		return nil, err
	}

	plaintext, err := cryptox.Open(sealed, b.passphrase)
	if errors.Is(err, cryptox.ErrNotSealed) {
		return nil, fmt.Errorf("%w: %w", common.ErrDecode, err)
	}
	if err != nil {
		return nil, fmt.Errorf("open sealed profile: %w", err)
	}
	return plaintext, nil
}

func (b *EncryptedBackend) WriteBytes(ctx context.Context, data []byte) error {
	sealed, err := cryptox.Seal(data, b.passphrase)
	if err != nil {
		return fmt.Errorf("seal profile: %w", err)
	}
	return b.inner.WriteBytes(ctx, sealed)
}

func (b *EncryptedBackend) Clear(ctx context.Context) error {
	return b.inner.Clear(ctx)
}

func (b *EncryptedBackend) SavedAt(ctx context.Context) (time.Time, error) {
	if r, ok := b.inner.(store.SavedAtReporter); ok {
		return r.SavedAt(ctx)
	}
	return time.Time{}, common.ErrorNotFound
}

// Close wipes the passphrase held in memory.
func (b *EncryptedBackend) Close() error {
	common.WipeByteArray(b.passphrase)
	return nil
}
