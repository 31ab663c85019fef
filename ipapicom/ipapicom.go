package ipapicom

import (
	"context"
	"os"

	"geolookup/geo"
)

const (
	Vendor       = "ipapicom"
	Endpoint     = "http://api.ipapi.com/api"
	EnvAccessKey = "IPAPICOM_ACCESS_KEY"
)

// Client talks to ipapi.com. Every lookup needs an explicit subject.
type Client struct {
	api *geo.Client[Record]
}

func New(accessKey string, opts ...geo.Option) *Client {
	cfg := geo.Config{
		Vendor:          Vendor,
		Endpoint:        Endpoint,
		LangKey:         "language",
		FieldsKey:       "fields",
		CredentialKey:   "access_key",
		Credential:      accessKey,
		SubjectRequired: true,
	}
	return &Client{api: geo.NewClient[Record](cfg.Apply(opts...))}
}

func NewFromEnv(opts ...geo.Option) *Client {
	return New(geo.ResolveCredential("", EnvAccessKey, os.LookupEnv), opts...)
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
