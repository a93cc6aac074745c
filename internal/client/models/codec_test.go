package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/greenkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullProfile(t *testing.T) UserProfile {
	t.Helper()
	p, err := DefaultProfile().SetProvince("RM")
	require.NoError(t, err)
	p, err = p.SetHealthStatus(HealthStatusRisk)
	require.NoError(t, err)
	p = p.RecordServiceNotActiveWarning(time.Date(2021, 7, 2, 9, 30, 15, 123456789, time.UTC))
	p, err = p.UpsertCertificate(GreenCertificate{
		ID:             "01FA2B",
		OwnerName:      "Mario Rossi",
		OwnerBirthDate: "1970-01-01",
		RawCertificate: "HC1:6BFOXN%TS3DH0YOJ58S S-W5HDC *M0II5XHC9B5G2+$N IOP-IA%NFQGRJPC%OQHIZC4.OI1RM8ZA.A5:S9MKN4NN3F85QNCY0O%0VZ001HOC9JU0D0HT0HB2PL/IB*09B9LW4T*8+DCMH0LDK2%K:XFE70*LP$V25$0Q:J:4MO1P0%0L0HD+9E/HY+4J6TH48S%4K.GJ2PT3QY:GQ3TE2I+-CPHN6D7LLK*2HG%89UV-0LZ 2ZJJ524-LH/CJTK96L6SR9MU9DHGZ%P WUQRENS431T1XCNCF+47AY0-IFO0500TGPN8F5G.41Q2E4T8ALW.INSV$ 07UV5SR+BNQHNML7 /KD3TU 4V*CAT3ZGLQMI/XI%ZJNSBBXK2:UG%UJMI:TU+MMPZ5$/PMX19UE:-PSR3/$NU44CBE6DQ3D7B0FBOFX0DV2DGMB$YPF62I$60/F$Z2I6IFX21XNI-LM%3/DF/U6Z9FEOJVRLVW6K$UG+BKK57:1+D10%4K83F+1VWD1NE",
		Detail: CertificateDetail{
			Disease: "COVID-19", VaccineType: "SARS-CoV-2 mRNA vaccine", VaccineName: "Comirnaty",
			VaccineProducer: "BioNTech Manufacturing GmbH", NumberOfDoses: "2/2",
			DateLastAdministration: "2021-06-11", VaccinationCountry: "IT",
			CertificateAuthority: "Ministero della Salute", Paragraph: "Certificato valido",
			URL: "https://www.dgc.gov.it/web/",
		},
	})
	require.NoError(t, err)
	p, err = p.UpsertCertificate(GreenCertificate{ID: "second", RawCertificate: "Y"})
	require.NoError(t, err)
	return p
}

func TestRoundTrip(t *testing.T) {
	fetchedEmpty := DefaultProfile().MarkCertificatesFetched()

	tests := []struct {
		name string
		p    UserProfile
	}{
		{name: "default", p: DefaultProfile()},
		{name: "fetched empty", p: fetchedEmpty},
		{name: "full", p: fullProfile(t)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := EncodeProfile(tt.p)
			require.NoError(t, err)

			got, err := DecodeProfile(b)
			require.NoError(t, err)
			assert.Equal(t, tt.p, got)
			assert.Equal(t, tt.p.Certificates.State(), got.Certificates.State())
		})
	}
}

func TestEncodeProfile_RejectsOutOfRangeYear(t *testing.T) {
	for _, year := range []int{10000, -1} {
		p := DefaultProfile()
		p.LastServiceNotActiveDate = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)

		_, err := EncodeProfile(p)
		require.ErrorIs(t, err, common.ErrEncode, "year %d", year)
	}

	p := DefaultProfile().RecordServiceNotActiveWarning(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
	b, err := EncodeProfile(p)
	require.NoError(t, err)
	got, err := DecodeProfile(b)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestEncodeProfile_DateWithLocationDecodesAsUTC(t *testing.T) {
	cet := time.FixedZone("CET", 60*60)
	at := time.Date(2021, 11, 3, 12, 0, 0, 0, cet)

	p := DefaultProfile()
	p.LastServiceNotActiveDate = at

	b, err := EncodeProfile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"last_service_not_active_date":"2021-11-03T11:00:00Z"`)

	got, err := DecodeProfile(b)
	require.NoError(t, err)
	assert.True(t, got.LastServiceNotActiveDate.Equal(at))
	assert.Equal(t, at.UTC(), got.LastServiceNotActiveDate)
}

func TestEncodeProfile_ThreeStateCertificates(t *testing.T) {
	b, err := EncodeProfile(DefaultProfile())
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.NotContains(t, m, "green_certificates")
	assert.NotContains(t, m, "province")
	assert.Equal(t, "0001-01-01T00:00:00Z", m["last_service_not_active_date"])

	b, err = EncodeProfile(DefaultProfile().MarkCertificatesFetched())
	require.NoError(t, err)
	m = nil
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, []any{}, m["green_certificates"])
}

func TestEncodeProfile_RejectsInvalidEnums(t *testing.T) {
	p := DefaultProfile()
	p.Province = "XX"
	_, err := EncodeProfile(p)
	require.ErrorIs(t, err, common.ErrEncode)

	p = DefaultProfile()
	p.HealthStatus = ""
	_, err = EncodeProfile(p)
	require.ErrorIs(t, err, common.ErrEncode)
}

func TestDecodeProfile_Errors(t *testing.T) {
	const date = `"last_service_not_active_date":"0001-01-01T00:00:00Z"`

	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ``},
		{name: "not json", in: `garbage`},
		{name: "array", in: `[]`},
		{name: "missing version", in: `{` + date + `,"health_status":"neutral"}`},
		{name: "future version", in: `{"version":2,` + date + `,"health_status":"neutral"}`},
		{name: "unknown field", in: `{"version":1,` + date + `,"health_status":"neutral","extra":1}`},
		{name: "unknown province", in: `{"version":1,"province":"XX",` + date + `,"health_status":"neutral"}`},
		{name: "empty province", in: `{"version":1,"province":"",` + date + `,"health_status":"neutral"}`},
		{name: "bad status", in: `{"version":1,` + date + `,"health_status":"sick"}`},
		{name: "missing status", in: `{"version":1,` + date + `}`},
		{name: "bad date", in: `{"version":1,"last_service_not_active_date":"yesterday","health_status":"neutral"}`},
		{name: "missing date", in: `{"version":1,"health_status":"neutral"}`},
		{name: "duplicate ids", in: `{"version":1,` + date + `,"health_status":"neutral","green_certificates":[{"id":"a"},{"id":"a"}]}`},
		{name: "empty id", in: `{"version":1,` + date + `,"health_status":"neutral","green_certificates":[{"id":""}]}`},
		{name: "trailing data", in: `{"version":1,` + date + `,"health_status":"neutral"} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeProfile([]byte(tt.in))
			require.ErrorIs(t, err, common.ErrDecode)
		})
	}
}

func TestDecodeProfile_TrailingWhitespaceAccepted(t *testing.T) {
	b, err := EncodeProfile(DefaultProfile())
	require.NoError(t, err)

	got, err := DecodeProfile(append(b, '\n', ' '))
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), got)
}

func TestDecodeProfile_PreservesRawCertificate(t *testing.T) {
	raw := "HC1:NCFOXN%TS3DH3ZSUZK+.V0ETD%65NL-AH è \"quoted\" \\ slash"
	p, err := DefaultProfile().UpsertCertificate(GreenCertificate{ID: "x", RawCertificate: raw})
	require.NoError(t, err)

	b, err := EncodeProfile(p)
	require.NoError(t, err)
	got, err := DecodeProfile(b)
	require.NoError(t, err)

	c, ok := got.Certificate("x")
	require.True(t, ok)
	assert.Equal(t, raw, c.RawCertificate)
}
