// Package services implements the profile flows driven by the presentation
// layer: onboarding, certificate retrieval, status checks and the "service
// not active" warning.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/greenkeeper/internal/client/models"
	"github.com/dmitrijs2005/greenkeeper/internal/logging"
	"github.com/google/uuid"
)

// ProfileStore is the part of store.Store the flows need.
type ProfileStore interface {
	Load(ctx context.Context) (models.UserProfile, error)
	Update(ctx context.Context, fn func(models.UserProfile) (models.UserProfile, error)) (models.UserProfile, error)
	Reset(ctx context.Context) error
	SavedAt(ctx context.Context) (time.Time, bool, error)
}

type ProfileService interface {
	Profile(ctx context.Context) (models.UserProfile, error)
	SavedAt(ctx context.Context) (time.Time, bool, error)
	Onboard(ctx context.Context, province string) (models.UserProfile, error)
	ImportCertificate(ctx context.Context, cert models.GreenCertificate) (models.GreenCertificate, error)
	CertificatesFetched(ctx context.Context) (models.UserProfile, error)
	UpdateHealthStatus(ctx context.Context, status string) (models.UserProfile, error)
	NotifyServiceNotActive(ctx context.Context, now time.Time) (bool, error)
	Reset(ctx context.Context) error
}

type profileService struct {
	store    ProfileStore
	cooldown time.Duration
	log      logging.Logger
	newID    func() string
}

// NewProfileService wires the flows to store. cooldown is the minimum gap
// between two "service not active" warnings.
func NewProfileService(store ProfileStore, cooldown time.Duration, log logging.Logger) ProfileService {
	return &profileService{
		store:    store,
		cooldown: cooldown,
		log:      log.With("component", "profile"),
		newID:    uuid.NewString,
	}
}

func (s *profileService) Profile(ctx context.Context) (models.UserProfile, error) {
	return s.store.Load(ctx)
}

func (s *profileService) SavedAt(ctx context.Context) (time.Time, bool, error) {
	return s.store.SavedAt(ctx)
}

func (s *profileService) Onboard(ctx context.Context, province string) (models.UserProfile, error) {
	p, err := models.ParseProvince(province)
	if err != nil {
		return models.UserProfile{}, err
	}

	profile, err := s.store.Update(ctx, func(up models.UserProfile) (models.UserProfile, error) {
		return up.SetProvince(p)
	})
	if err != nil {
		s.log.Error(ctx, "onboarding failed", "province", province, "error", err)
		return profile, err
	}

	s.log.Info(ctx, "province set", "province", string(p))
	return profile, nil
}

// ImportCertificate stores cert, replacing any certificate with the same id.
// A certificate without an id gets a fresh one.
func (s *profileService) ImportCertificate(ctx context.Context, cert models.GreenCertificate) (models.GreenCertificate, error) {
	if cert.ID == "" {
		cert.ID = s.newID()
	}

	var replaced bool
	_, err := s.store.Update(ctx, func(up models.UserProfile) (models.UserProfile, error) {
		_, replaced = up.Certificate(cert.ID)
		return up.UpsertCertificate(cert)
	})
	if err != nil {
		s.log.Error(ctx, "certificate import failed", "id", cert.ID, "error", err)
		return models.GreenCertificate{}, err
	}

	if !cert.Detail.Complete() {
		s.log.Warn(ctx, "certificate detail incomplete", "id", cert.ID)
	}
	s.log.Info(ctx, "certificate stored", "id", cert.ID, "replaced", replaced)
	return cert, nil
}

func (s *profileService) CertificatesFetched(ctx context.Context) (models.UserProfile, error) {
	profile, err := s.store.Update(ctx, func(up models.UserProfile) (models.UserProfile, error) {
		return up.MarkCertificatesFetched(), nil
	})
	if err != nil {
		s.log.Error(ctx, "marking certificates fetched failed", "error", err)
		return profile, err
	}
	s.log.Info(ctx, "certificates fetched", "state", profile.Certificates.State().String())
	return profile, nil
}

func (s *profileService) UpdateHealthStatus(ctx context.Context, status string) (models.UserProfile, error) {
	st, err := models.ParseHealthStatus(status)
	if err != nil {
		return models.UserProfile{}, err
	}

	profile, err := s.store.Update(ctx, func(up models.UserProfile) (models.UserProfile, error) {
		return up.SetHealthStatus(st)
	})
	if err != nil {
		s.log.Error(ctx, "health status update failed", "status", status, "error", err)
		return profile, err
	}

	s.log.Info(ctx, "health status updated", "status", string(st))
	return profile, nil
}

// NotifyServiceNotActive reports whether the "service not active" warning
// should be shown now. When it should, the warning time is recorded so that
// repeats within the cool-down are suppressed.
func (s *profileService) NotifyServiceNotActive(ctx context.Context, now time.Time) (bool, error) {
	var show bool
	_, err := s.store.Update(ctx, func(up models.UserProfile) (models.UserProfile, error) {
		show = up.ShouldWarnServiceNotActive(now, s.cooldown)
		if !show {
			return up, nil
		}
		return up.RecordServiceNotActiveWarning(now), nil
	})
	if err != nil {
		s.log.Error(ctx, "recording service warning failed", "error", err)
		return false, err
	}

	if show {
		s.log.Info(ctx, "service not active warning shown", "at", now.UTC())
	} else {
		s.log.Debug(ctx, "service not active warning suppressed", "cooldown", s.cooldown)
	}
	return show, nil
}

func (s *profileService) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		s.log.Error(ctx, "profile reset failed", "error", err)
		return err
	}
	return nil
}
