package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/greenkeeper/internal/common"
)

// CertificateDetail holds the human-readable fields shown next to a green
// certificate. All fields are free text.
type CertificateDetail struct {
	Disease                string
	VaccineType            string
	VaccineName            string
	VaccineProducer        string
	NumberOfDoses          string
	DateLastAdministration string
	VaccinationCountry     string
	CertificateAuthority   string
	// Paragraph is the explanatory text displayed under the detail table.
	Paragraph string
	URL       string
}

// Complete reports whether every field is filled in, which is the case for
// any detail parsed from a valid certificate.
func (d CertificateDetail) Complete() bool {
	for _, f := range []string{
		d.Disease, d.VaccineType, d.VaccineName, d.VaccineProducer,
		d.NumberOfDoses, d.DateLastAdministration, d.VaccinationCountry,
		d.CertificateAuthority, d.Paragraph, d.URL,
	} {
		if f == "" {
			return false
		}
	}
	return true
}

// GreenCertificate is an EU Digital Green Certificate as stored on the device.
// RawCertificate is the payload exactly as received from the retrieval
// service; it is never edited, a newer certificate replaces the whole entry.
type GreenCertificate struct {
	ID             string
	OwnerName      string
	OwnerBirthDate string
	RawCertificate string
	Detail         CertificateDetail
}

// ValidateCertificateID rejects empty identifiers and identifiers with
// surrounding whitespace.
func ValidateCertificateID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty certificate id", common.ErrInvalidValue)
	}
	if strings.TrimSpace(id) != id {
		return fmt.Errorf("%w: certificate id %q has surrounding whitespace", common.ErrInvalidValue, id)
	}
	return nil
}

// CertificatesState distinguishes a list that was never fetched from one that
// was fetched and came back empty.
type CertificatesState int

const (
	CertificatesNotFetched CertificatesState = iota
	CertificatesFetchedEmpty
	CertificatesFetchedWithItems
)

func (s CertificatesState) String() string {
	switch s {
	case CertificatesNotFetched:
		return "not fetched"
	case CertificatesFetchedEmpty:
		return "fetched, none present"
	case CertificatesFetchedWithItems:
		return "fetched"
	}
	return fmt.Sprintf("CertificatesState(%d)", int(s))
}

// Certificates is an ordered list of green certificates with unique ids.
// The zero value is the "not fetched" state. It is a value type: every
// mutating method returns a new list and never touches the receiver's
// backing array.
type Certificates struct {
	fetched bool
	items   []GreenCertificate
}

// NotFetchedCertificates returns the initial state.
func NotFetchedCertificates() Certificates {
	return Certificates{}
}

// NewCertificates builds a fetched list from items, rejecting invalid or
// duplicate ids. An empty items slice gives the fetched-empty state.
func NewCertificates(items ...GreenCertificate) (Certificates, error) {
	seen := make(map[string]struct{}, len(items))
	for _, c := range items {
		if err := ValidateCertificateID(c.ID); err != nil {
			return Certificates{}, err
		}
		if _, dup := seen[c.ID]; dup {
			return Certificates{}, fmt.Errorf("%w: duplicate certificate id %q", common.ErrInvalidValue, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	out := Certificates{fetched: true}
	if len(items) > 0 {
		out.items = append([]GreenCertificate(nil), items...)
	}
	return out, nil
}

func (c Certificates) State() CertificatesState {
	switch {
	case !c.fetched:
		return CertificatesNotFetched
	case len(c.items) == 0:
		return CertificatesFetchedEmpty
	default:
		return CertificatesFetchedWithItems
	}
}

func (c Certificates) Fetched() bool { return c.fetched }

func (c Certificates) Len() int { return len(c.items) }

// Items returns a copy of the certificates in order. Nil when there are none.
func (c Certificates) Items() []GreenCertificate {
	if len(c.items) == 0 {
		return nil
	}
	return append([]GreenCertificate(nil), c.items...)
}

// Get returns the certificate with the given id.
func (c Certificates) Get(id string) (GreenCertificate, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return GreenCertificate{}, false
}

// Upsert replaces the certificate with cert.ID in place, or appends cert.
// The result is always in a fetched state.
func (c Certificates) Upsert(cert GreenCertificate) (Certificates, error) {
	if err := ValidateCertificateID(cert.ID); err != nil {
		return c, err
	}

	items := make([]GreenCertificate, len(c.items), len(c.items)+1)
	copy(items, c.items)

	replaced := false
	for i := range items {
		if items[i].ID == cert.ID {
			items[i] = cert
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, cert)
	}

	return Certificates{fetched: true, items: items}, nil
}

// MarkFetched moves the not-fetched state to fetched-empty and leaves any
// fetched list unchanged.
func (c Certificates) MarkFetched() Certificates {
	if c.fetched {
		return c
	}
	return Certificates{fetched: true}
}
