package ipwhois

import (
	"context"
	"os"

	"geolookup/geo"
)

const (
	Vendor    = "ipwhois"
	Endpoint  = "https://ipwho.is"
	EnvAPIKey = "IPWHOIS_API_KEY"
)

// Client talks to ipwho.is. The key is optional; without it the free tier
// applies.
type Client struct {
	api *geo.Client[Record]
}

func New(apiKey string, opts ...geo.Option) *Client {
	cfg := geo.Config{
		Vendor:          Vendor,
		Endpoint:        Endpoint,
		LangKey:         "lang",
		FieldsKey:       "fields",
		CredentialKey:   "key",
		Credential:      apiKey,
		SubjectRequired: true,
	}
	return &Client{api: geo.NewClient[Record](cfg.Apply(opts...))}
}

func NewFromEnv(opts ...geo.Option) *Client {
	return New(geo.ResolveCredential("", EnvAPIKey, os.LookupEnv), opts...)
}

func (c *Client) Config() geo.Config {
	return c.api.Config()
}

func (c *Client) URL(ip, lang string, fields []string) (string, error) {
	return c.api.URL(geo.Request{Subject: ip, Lang: lang, Fields: fields})
}

func (c *Client) Lookup(ctx context.Context, ip, lang string, fields []string) (*Record, error) {
	return c.api.Lookup(ctx, geo.Request{Subject: ip, Lang: lang, Fields: fields})
}

func (c *Client) Locate(ctx context.Context, req geo.Request) (geo.Record, error) {
	rec, err := c.api.Lookup(ctx, req)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
