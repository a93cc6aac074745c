package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/greenkeeper/internal/common"
)

// ProfileSchemaVersion is written into every encoded profile. Decoding
// rejects any other version.
const ProfileSchemaVersion = 1

// The DTOs below describe the persisted layout. Domain types carry no JSON
// tags; translation happens only in EncodeProfile and DecodeProfile.

type profileDTO struct {
	Version                  int     `json:"version"`
	Province                 *string `json:"province,omitempty"`
	LastServiceNotActiveDate string  `json:"last_service_not_active_date"`
	HealthStatus             string  `json:"health_status"`
	// nil: never fetched, empty: fetched with no certificates.
	GreenCertificates *[]certificateDTO `json:"green_certificates,omitempty"`
}

type certificateDTO struct {
	ID             string    `json:"id"`
	OwnerName      string    `json:"name"`
	OwnerBirthDate string    `json:"birth"`
	RawCertificate string    `json:"green_certificate"`
	Detail         detailDTO `json:"detail"`
}

type detailDTO struct {
	Disease                string `json:"disease"`
	VaccineType            string `json:"vaccine_type"`
	VaccineName            string `json:"vaccine_name"`
	VaccineProducer        string `json:"vaccine_producer"`
	NumberOfDoses          string `json:"number_of_doses"`
	DateLastAdministration string `json:"date_last_administration"`
	VaccinationCountry     string `json:"vaccination_country"`
	CertificateAuthority   string `json:"certificate_authority"`
	Paragraph              string `json:"paragraph"`
	URL                    string `json:"url"`
}

// EncodeProfile serializes p. It fails with common.ErrEncode when p holds a
// value that DecodeProfile would reject, including a LastServiceNotActiveDate
// outside years 0-9999. Dates are stored as UTC instants: a date carrying
// another location decodes to the same instant in UTC.
func EncodeProfile(p UserProfile) ([]byte, error) {
	last, err := normalizeTime(p.LastServiceNotActiveDate).MarshalText()
	if err != nil {
		return nil, fmt.Errorf("%w: last_service_not_active_date: %w", common.ErrEncode, err)
	}

	dto := profileDTO{
		Version:                  ProfileSchemaVersion,
		LastServiceNotActiveDate: string(last),
		HealthStatus:             string(p.HealthStatus),
	}

	if p.Province != ProvinceUnset {
		if !p.Province.Valid() {
			return nil, fmt.Errorf("%w: unknown province %q", common.ErrEncode, string(p.Province))
		}
		province := string(p.Province)
		dto.Province = &province
	}

	if !p.HealthStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown health status %q", common.ErrEncode, string(p.HealthStatus))
	}

	if p.Certificates.Fetched() {
		certs := make([]certificateDTO, 0, p.Certificates.Len())
		for _, c := range p.Certificates.items {
			certs = append(certs, certificateToDTO(c))
		}
		dto.GreenCertificates = &certs
	}

	b, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrEncode, err)
	}
	return b, nil
}

// DecodeProfile parses data produced by EncodeProfile. Any deviation from the
// schema (unknown fields or version, bad enum values, empty or duplicate
// certificate ids, trailing data) fails with common.ErrDecode.
func DecodeProfile(data []byte) (UserProfile, error) {
	var dto profileDTO

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dto); err != nil {
		return UserProfile{}, fmt.Errorf("%w: %w", common.ErrDecode, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return UserProfile{}, fmt.Errorf("%w: trailing data after profile", common.ErrDecode)
	}

	if dto.Version != ProfileSchemaVersion {
		return UserProfile{}, fmt.Errorf("%w: unsupported schema version %d", common.ErrDecode, dto.Version)
	}

	p := DefaultProfile()

	if dto.Province != nil {
		province := Province(*dto.Province)
		if !province.Valid() {
			return UserProfile{}, fmt.Errorf("%w: unknown province %q", common.ErrDecode, *dto.Province)
		}
		p.Province = province
	}

	var last time.Time
	if err := last.UnmarshalText([]byte(dto.LastServiceNotActiveDate)); err != nil {
		return UserProfile{}, fmt.Errorf("%w: last_service_not_active_date: %w", common.ErrDecode, err)
	}
	p.LastServiceNotActiveDate = normalizeTime(last)

	status := HealthStatus(dto.HealthStatus)
	if !status.Valid() {
		return UserProfile{}, fmt.Errorf("%w: unknown health status %q", common.ErrDecode, dto.HealthStatus)
	}
	p.HealthStatus = status

	if dto.GreenCertificates != nil {
		items := make([]GreenCertificate, 0, len(*dto.GreenCertificates))
		for _, c := range *dto.GreenCertificates {
			items = append(items, certificateFromDTO(c))
		}
		certs, err := NewCertificates(items...)
		if err != nil {
			return UserProfile{}, fmt.Errorf("%w: %w", common.ErrDecode, err)
		}
		p.Certificates = certs
	}

	return p, nil
}

func certificateToDTO(c GreenCertificate) certificateDTO {
	return certificateDTO{
		ID:             c.ID,
		OwnerName:      c.OwnerName,
		OwnerBirthDate: c.OwnerBirthDate,
		RawCertificate: c.RawCertificate,
		Detail: detailDTO{
			Disease:                c.Detail.Disease,
			VaccineType:            c.Detail.VaccineType,
			VaccineName:            c.Detail.VaccineName,
			VaccineProducer:        c.Detail.VaccineProducer,
			NumberOfDoses:          c.Detail.NumberOfDoses,
			DateLastAdministration: c.Detail.DateLastAdministration,
			VaccinationCountry:     c.Detail.VaccinationCountry,
			CertificateAuthority:   c.Detail.CertificateAuthority,
			Paragraph:              c.Detail.Paragraph,
			URL:                    c.Detail.URL,
		},
	}
}

func certificateFromDTO(c certificateDTO) GreenCertificate {
	return GreenCertificate{
		ID:             c.ID,
		OwnerName:      c.OwnerName,
		OwnerBirthDate: c.OwnerBirthDate,
		RawCertificate: c.RawCertificate,
		Detail: CertificateDetail{
			Disease:                c.Detail.Disease,
			VaccineType:            c.Detail.VaccineType,
			VaccineName:            c.Detail.VaccineName,
			VaccineProducer:        c.Detail.VaccineProducer,
			NumberOfDoses:          c.Detail.NumberOfDoses,
			DateLastAdministration: c.Detail.DateLastAdministration,
			VaccinationCountry:     c.Detail.VaccinationCountry,
			CertificateAuthority:   c.Detail.CertificateAuthority,
			Paragraph:              c.Detail.Paragraph,
			URL:                    c.Detail.URL,
		},
	}
}
