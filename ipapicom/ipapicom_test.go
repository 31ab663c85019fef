package ipapicom

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geolookup/geo"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func stubClient(gotURL *string, body string) *http.Client {
	return &http.Client{Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if gotURL != nil {
			*gotURL = r.URL.String()
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})}
}

const samplePayload = `{
  "ip": "134.201.250.155",
  "hostname": "134.201.250.155",
  "type": "ipv4",
  "continent_code": "NA",
  "continent_name": "North America",
  "country_code": "US",
  "country_name": "United States",
  "region_code": "CA",
  "region_name": "California",
  "city": "Los Angeles",
  "zip": "90013",
  "latitude": 34.0453,
  "longitude": -118.2413,
  "location": {
    "geoname_id": 5368361,
    "capital": "Washington D.C.",
    "languages": [{"code": "en", "name": "English", "native": "English"}],
    "country_flag_emoji": "🇺🇸",
    "calling_code": "1",
    "is_eu": false
  },
  "time_zone": {
    "id": "America/Los_Angeles",
    "current_time": "2018-03-29T07:35:08-07:00",
    "gmt_offset": -25200,
    "code": "PDT",
    "is_daylight_saving": true
  },
  "currency": {"code": "USD", "name": "US Dollar", "plural": "US dollars", "symbol": "$", "symbol_native": "$"},
  "connection": {"asn": 25876, "isp": "Los Angeles Department of Water & Power"},
  "security": {"is_proxy": false, "proxy_type": null, "is_crawler": false, "crawler_name": null, "crawler_type": null, "is_tor": false, "threat_level": "low", "threat_types": null}
}`

func TestNewDefaults(t *testing.T) {
	cfg := New("").Config()

	assert.Equal(t, Endpoint, cfg.Endpoint)
	assert.True(t, cfg.SubjectRequired)
	assert.Equal(t, "access_key", cfg.CredentialKey)
	assert.Equal(t, "language", cfg.LangKey)
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv(EnvAccessKey, "envkey")
	assert.Equal(t, "envkey", NewFromEnv().Config().Credential)
}

func TestURL(t *testing.T) {
	c := New("key123")

	got, err := c.URL("134.201.250.155", "es", []string{"ip", "country_name"})

	require.NoError(t, err)
	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "api.ipapi.com", u.Host)
	assert.Equal(t, "/api/134.201.250.155", u.Path)
	assert.Equal(t, url.Values{
		"access_key": []string{"key123"},
		"language":   []string{"es"},
		"fields":     []string{"ip,country_name"},
	}, u.Query())
}

func TestURLRequiresSubject(t *testing.T) {
	_, err := New("key123").URL("", "", nil)
	assert.True(t, geo.IsInvalidRequest(err))
}

func TestLookupRequiresSubjectBeforeTransport(t *testing.T) {
	var gotURL string
	c := New("", geo.WithHTTPClient(stubClient(&gotURL, samplePayload)))

	rec, err := c.Lookup(context.Background(), "", "", nil)

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, geo.ErrInvalidRequest)
	assert.Empty(t, gotURL)
}

func TestLookupSample(t *testing.T) {
	var gotURL string
	c := New("key123", geo.WithHTTPClient(stubClient(&gotURL, samplePayload)))

	rec, err := c.Lookup(context.Background(), "134.201.250.155", "", nil)

	require.NoError(t, err)
	assert.Equal(t, "http://api.ipapi.com/api/134.201.250.155?access_key=key123", gotURL)
	assert.True(t, rec.Success())
	assert.Equal(t, "United States", *rec.CountryName)
	assert.Equal(t, 34.0453, *rec.Latitude)
	assert.Equal(t, int64(5368361), *rec.Location.GeonameID)
	assert.Equal(t, -25200, *rec.TimeZone.GMTOffset)
	assert.Equal(t, int64(25876), *rec.Connection.ASN)
	assert.Nil(t, rec.Security.ProxyType)
	assert.Equal(t, "low", *rec.Security.ThreatLevel)
	assert.Equal(t, "Los Angeles, California, 90013, United States", rec.Address())
}

func TestLookupVendorError(t *testing.T) {
	body := `{"success":false,"error":{"code":101,"type":"missing_access_key","info":"You have not supplied an API Access Key."}}`
	c := New("", geo.WithHTTPClient(stubClient(nil, body)))

	rec, err := c.Lookup(context.Background(), "134.201.250.155", "", nil)

	require.NoError(t, err)
	assert.False(t, rec.Success())
	assert.True(t, rec.Failed())
	require.NotNil(t, rec.Error)
	assert.Equal(t, 101, rec.Error.Code)
	assert.Equal(t, "missing_access_key", rec.Error.Type)
}

func TestLookupMissingIP(t *testing.T) {
	c := New("", geo.WithHTTPClient(stubClient(nil, `{"country_name":"United States"}`)))

	rec, err := c.Lookup(context.Background(), "134.201.250.155", "", nil)

	assert.Nil(t, rec)
	assert.True(t, geo.IsDecodeError(err))
}

func TestLookupSelectionWithoutIP(t *testing.T) {
	c := New("", geo.WithHTTPClient(stubClient(nil, `{"country_name":"United States"}`)))

	rec, err := c.Lookup(context.Background(), "134.201.250.155", "", []string{"country_name"})

	require.NoError(t, err)
	assert.False(t, rec.Success())
	assert.False(t, rec.Failed())
	assert.Equal(t, "United States", rec.Address())
}

func TestSuccessWithoutStatusField(t *testing.T) {
	assert.False(t, (&Record{}).Success())
	ip := "1.1.1.1"
	no := false
	assert.True(t, (&Record{IP: &ip}).Success())
	assert.False(t, (&Record{IP: &ip, Succeeded: &no}).Success())
	assert.False(t, (&Record{}).Failed())
	assert.True(t, (&Record{IP: &ip, Succeeded: &no}).Failed())
}
