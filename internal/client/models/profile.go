package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/greenkeeper/internal/common"
)

// UserProfile is the persisted state of the single local user.
//
// Mutators have value receivers and return the updated profile, so a caller
// holding an older copy never sees it change underneath.
type UserProfile struct {
	// Province is ProvinceUnset until onboarding completes.
	Province Province

	// LastServiceNotActiveDate is the time the "service not active" warning
	// was last shown. The zero time means never. It never decreases.
	LastServiceNotActiveDate time.Time

	HealthStatus HealthStatus

	Certificates Certificates
}

// DefaultProfile is the profile of a fresh install.
func DefaultProfile() UserProfile {
	return UserProfile{
		Province:                 ProvinceUnset,
		LastServiceNotActiveDate: time.Time{},
		HealthStatus:             HealthStatusNeutral,
		Certificates:             NotFetchedCertificates(),
	}
}

func (p UserProfile) SetProvince(province Province) (UserProfile, error) {
	if !province.Valid() {
		return p, fmt.Errorf("%w: unknown province %q", common.ErrInvalidValue, string(province))
	}
	p.Province = province
	return p, nil
}

func (p UserProfile) SetHealthStatus(status HealthStatus) (UserProfile, error) {
	if !status.Valid() {
		return p, fmt.Errorf("%w: unknown health status %q", common.ErrInvalidValue, string(status))
	}
	p.HealthStatus = status
	return p, nil
}

// UpsertCertificate replaces the certificate with the same id in place, or
// appends it. The relative order of the other certificates is kept.
func (p UserProfile) UpsertCertificate(cert GreenCertificate) (UserProfile, error) {
	certs, err := p.Certificates.Upsert(cert)
	if err != nil {
		return p, err
	}
	p.Certificates = certs
	return p, nil
}

// MarkCertificatesFetched records that retrieval ran and found nothing new.
func (p UserProfile) MarkCertificatesFetched() UserProfile {
	p.Certificates = p.Certificates.MarkFetched()
	return p
}

// Certificate looks up a certificate by id.
func (p UserProfile) Certificate(id string) (GreenCertificate, bool) {
	return p.Certificates.Get(id)
}

// RecordServiceNotActiveWarning moves LastServiceNotActiveDate forward to now.
// A now that is not strictly later than the stored date is ignored.
func (p UserProfile) RecordServiceNotActiveWarning(now time.Time) UserProfile {
	now = normalizeTime(now)
	if now.After(p.LastServiceNotActiveDate) {
		p.LastServiceNotActiveDate = now
	}
	return p
}

// ShouldWarnServiceNotActive reports whether at least cooldown has passed
// since the last warning.
func (p UserProfile) ShouldWarnServiceNotActive(now time.Time, cooldown time.Duration) bool {
	if p.LastServiceNotActiveDate.IsZero() {
		return true
	}
	return now.Sub(p.LastServiceNotActiveDate) >= cooldown
}

// normalizeTime drops the monotonic reading and the location so that a
// stored date compares equal to its decoded form.
func normalizeTime(t time.Time) time.Time {
	return t.Round(0).UTC()
}
