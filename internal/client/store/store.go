// Package store persists the single UserProfile of the device.
//
// A Store serializes access to its Backend: Load takes a shared lock, while
// Save, Update and Reset take an exclusive one, so two saves never
// interleave and a load observes either the state before or after a save.
// Atomicity of an individual write is the Backend's contract.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/greenkeeper/internal/client/models"
	"github.com/dmitrijs2005/greenkeeper/internal/common"
	"github.com/dmitrijs2005/greenkeeper/internal/logging"
)

// Backend is the persistence collaborator. Implementations live in
// internal/client/storage.
type Backend interface {
	// ReadBytes returns (nil, nil) when nothing has been persisted. An error
	// matching common.ErrDecode means the stored bytes are not in the expected
	// layout; any other error is a read failure.
	ReadBytes(ctx context.Context) ([]byte, error)
	// WriteBytes replaces the persisted bytes atomically.
	WriteBytes(ctx context.Context, data []byte) error
	// Clear removes the persisted bytes; clearing an empty backend is a no-op.
	Clear(ctx context.Context) error
}

// SavedAtReporter is implemented by backends that know when they were last
// written.
type SavedAtReporter interface {
	SavedAt(ctx context.Context) (time.Time, error)
}

type Store struct {
	mu      sync.RWMutex
	backend Backend
	log     logging.Logger
}

func New(backend Backend, log logging.Logger) *Store {
	return &Store{backend: backend, log: log}
}

// Load returns the persisted profile, or models.DefaultProfile when nothing
// is persisted. Malformed bytes fail with common.ErrDecode, backend failures
// with common.ErrRead.
func (s *Store) Load(ctx context.Context) (models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.load(ctx)
}

// Save persists p. Serialization failures wrap common.ErrEncode, backend
// failures wrap common.ErrWrite.
func (s *Store) Save(ctx context.Context, p models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(ctx, p)
}

// Update loads the profile, applies fn and saves the result, holding the
// exclusive lock throughout. Nothing is saved when fn fails.
func (s *Store) Update(ctx context.Context, fn func(models.UserProfile) (models.UserProfile, error)) (models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}

	next, err := fn(current)
	if err != nil {
		return current, err
	}

	if err := s.save(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}

// Reset drops the persisted profile. The next Load returns the default.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Clear(ctx); err != nil {
		return errors.Join(common.ErrWrite, fmt.Errorf("clear profile: %w", err))
	}
	s.log.Info(ctx, "profile reset")
	return nil
}

// SavedAt reports when the profile was last written, if the backend knows.
func (s *Store) SavedAt(ctx context.Context) (time.Time, bool, error) {
	r, ok := s.backend.(SavedAtReporter)
	if !ok {
		return time.Time{}, false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ts, err := r.SavedAt(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, errors.Join(common.ErrRead, err)
	}
	return ts, true, nil
}

func (s *Store) SetProvince(ctx context.Context, province models.Province) (models.UserProfile, error) {
	return s.Update(ctx, func(p models.UserProfile) (models.UserProfile, error) {
		return p.SetProvince(province)
	})
}

func (s *Store) SetHealthStatus(ctx context.Context, status models.HealthStatus) (models.UserProfile, error) {
	return s.Update(ctx, func(p models.UserProfile) (models.UserProfile, error) {
		return p.SetHealthStatus(status)
	})
}

func (s *Store) UpsertCertificate(ctx context.Context, cert models.GreenCertificate) (models.UserProfile, error) {
	return s.Update(ctx, func(p models.UserProfile) (models.UserProfile, error) {
		return p.UpsertCertificate(cert)
	})
}

func (s *Store) MarkCertificatesFetched(ctx context.Context) (models.UserProfile, error) {
	return s.Update(ctx, func(p models.UserProfile) (models.UserProfile, error) {
		return p.MarkCertificatesFetched(), nil
	})
}

func (s *Store) RecordServiceNotActiveWarning(ctx context.Context, now time.Time) (models.UserProfile, error) {
	return s.Update(ctx, func(p models.UserProfile) (models.UserProfile, error) {
		return p.RecordServiceNotActiveWarning(now), nil
	})
}

func (s *Store) load(ctx context.Context) (models.UserProfile, error) {
	data, err := s.backend.ReadBytes(ctx)
	if errors.Is(err, common.ErrDecode) {
		return models.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
	if err != nil {
		return models.UserProfile{}, errors.Join(common.ErrRead, fmt.Errorf("read profile: %w", err))
	}
	if data == nil {
		s.log.Debug(ctx, "no persisted profile, using defaults")
		return models.DefaultProfile(), nil
	}

	p, err := models.DecodeProfile(data)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

func (s *Store) save(ctx context.Context, p models.UserProfile) error {
	data, err := models.EncodeProfile(p)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	if err := s.backend.WriteBytes(ctx, data); err != nil {
		return errors.Join(common.ErrWrite, fmt.Errorf("write profile: %w", err))
	}

	s.log.Debug(ctx, "profile saved", "bytes", len(data), "certificates", p.Certificates.Len())
	return nil
}
