package ipapi

import (
	"context"
	"os"

	"geolookup/geo"
)

const (
	Vendor = "ipapi"
	// EnvAccessKey names the variable NewFromEnv reads the access key from.
	EnvAccessKey = "IPAPI_ACCESS_KEY"
)

// Client talks to ip-api.com. The subject is optional: without one the
// vendor geolocates the caller's own public address.
type Client struct {
	api *geo.Client[Record]
}

// New never fails and performs no I/O. An empty accessKey means free-tier
// requests. The default endpoint is FreeEndpoint, which is plain HTTP: keyed
// callers should pass geo.WithEndpoint(ProEndpoint), or the result of
// ResolveEndpoint, so the key is not sent in the clear.
func New(accessKey string, opts ...geo.Option) *Client {
	cfg := geo.Config{
		Vendor:        Vendor,
		Endpoint:      FreeEndpoint,
		LangKey:       "lang",
		FieldsKey:     "fields",
		CredentialKey: "accessKey",
		Credential:    accessKey,
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

// Lookup geolocates ip, or the caller when ip is empty.
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
