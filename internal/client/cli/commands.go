package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/greenkeeper/internal/client/models"
	"github.com/dmitrijs2005/greenkeeper/internal/common"
)

func (a *App) Show(ctx context.Context) error {
	p, err := a.profiles.Profile(ctx)
	if err != nil {
		return err
	}

	province := string(p.Province)
	if province == "" {
		province = "not set"
	}
	lastWarning := "never"
	if !p.LastServiceNotActiveDate.IsZero() {
		lastWarning = p.LastServiceNotActiveDate.Local().Format(time.RFC1123)
	}

	fmt.Fprintf(a.out, "Province:        %s\n", province)
	fmt.Fprintf(a.out, "Health status:   %s\n", p.HealthStatus)
	fmt.Fprintf(a.out, "Last warning:    %s\n", lastWarning)

	switch p.Certificates.State() {
	case models.CertificatesNotFetched:
		fmt.Fprintln(a.out, "Certificates:    not fetched yet")
	case models.CertificatesFetchedEmpty:
		fmt.Fprintln(a.out, "Certificates:    none found")
	default:
		fmt.Fprintf(a.out, "Certificates:    %d\n", p.Certificates.Len())
		for _, c := range p.Certificates.Items() {
			fmt.Fprintf(a.out, "  %-36s  %s  %s\n", c.ID, c.OwnerName, c.Detail.Disease)
		}
	}

	if ts, ok, err := a.profiles.SavedAt(ctx); err == nil && ok {
		fmt.Fprintf(a.out, "Saved at:        %s\n", ts.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *App) SetProvince(ctx context.Context, code string) error {
	p, err := a.profiles.Onboard(ctx, code)
	if errors.Is(err, common.ErrInvalidValue) {
		fmt.Fprintln(a.out, "Valid codes:", provinceList())
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Province set to %s\n", p.Province)
	return nil
}

func (a *App) SetStatus(ctx context.Context, status string) error {
	p, err := a.profiles.UpdateHealthStatus(ctx, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Health status set to %s\n", p.HealthStatus)
	return nil
}

// AddCertificate asks for the certificate fields one by one. An empty id
// lets the service generate one.
func (a *App) AddCertificate(ctx context.Context) error {
	var cert models.GreenCertificate
	d := &cert.Detail

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Certificate id (empty to generate)", &cert.ID},
		{"Raw certificate (HC1:...)", &cert.RawCertificate},
		{"Owner name", &cert.OwnerName},
		{"Owner birth date", &cert.OwnerBirthDate},
		{"Disease", &d.Disease},
		{"Vaccine type", &d.VaccineType},
		{"Vaccine name", &d.VaccineName},
		{"Vaccine producer", &d.VaccineProducer},
		{"Number of doses", &d.NumberOfDoses},
		{"Date of last administration", &d.DateLastAdministration},
		{"Vaccination country", &d.VaccinationCountry},
		{"Certificate authority", &d.CertificateAuthority},
		{"Explanatory text", &d.Paragraph},
		{"URL", &d.URL},
	}

	for _, f := range fields {
		v, err := GetSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return fmt.Errorf("read %s: %w", strings.ToLower(f.prompt), err)
		}
		*f.dst = v
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	if cert.RawCertificate == "" {
		return errors.New("raw certificate is required")
	}

	stored, err := a.profiles.ImportCertificate(ctx, cert)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Certificate %s stored\n", stored.ID)
	return nil
}

func (a *App) CertificatesFetched(ctx context.Context) error {
	p, err := a.profiles.CertificatesFetched(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Certificates: %s\n", p.Certificates.State())
	return nil
}

func (a *App) ShowCertificate(ctx context.Context, id string) error {
	p, err := a.profiles.Profile(ctx)
	if err != nil {
		return err
	}
	c, ok := p.Certificate(id)
	if !ok {
		fmt.Fprintf(a.out, "No certificate with id %s\n", id)
		return nil
	}

	d := c.Detail
	rows := [][2]string{
		{"Id", c.ID},
		{"Owner", c.OwnerName},
		{"Birth date", c.OwnerBirthDate},
		{"Disease", d.Disease},
		{"Vaccine type", d.VaccineType},
		{"Vaccine", d.VaccineName},
		{"Producer", d.VaccineProducer},
		{"Doses", d.NumberOfDoses},
		{"Last dose", d.DateLastAdministration},
		{"Country", d.VaccinationCountry},
		{"Issuer", d.CertificateAuthority},
		{"URL", d.URL},
	}
	for _, r := range rows {
		fmt.Fprintf(a.out, "%-13s %s\n", r[0]+":", r[1])
	}
	if d.Paragraph != "" {
		fmt.Fprintf(a.out, "\n%s\n", d.Paragraph)
	}
	fmt.Fprintf(a.out, "\n%s\n", c.RawCertificate)
	return nil
}

// Warn simulates the exposure notification service being switched off.
func (a *App) Warn(ctx context.Context) error {
	show, err := a.profiles.NotifyServiceNotActive(ctx, a.now())
	if err != nil {
		return err
	}
	if show {
		fmt.Fprintln(a.out, "Warning: the exposure notification service is not active. Turn it on to receive alerts.")
		return nil
	}
	fmt.Fprintf(a.out, "Warning already shown within the last %s\n", a.config.ServiceNotActiveCooldown)
	return nil
}

func (a *App) Reset(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader, "Delete the stored profile? Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Reset cancelled")
		return nil
	}
	if err := a.profiles.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile deleted")
	return nil
}

// provinceList is the space-separated list of accepted province codes.
func provinceList() string {
	all := models.Provinces()
	codes := make([]string, len(all))
	for i, p := range all {
		codes[i] = string(p)
	}
	return strings.Join(codes, " ")
}
