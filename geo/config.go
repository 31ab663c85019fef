package geo

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultMaxResponseBytes = 1 << 20 // 1MiB

// Config is the immutable configuration of a Client. Vendor packages fill in
// the endpoint and key names; callers adjust the rest through Options.
type Config struct {
	Vendor           string
	Endpoint         string
	LangKey          string
	FieldsKey        string
	CredentialKey    string
	Credential       string
	SubjectRequired  bool
	HTTPClient       HTTPClient
	MaxResponseBytes int64
	Logger           logrus.FieldLogger
}

type Option func(*Config)

func WithHTTPClient(c HTTPClient) Option {
	return func(cfg *Config) { cfg.HTTPClient = c }
}

func WithEndpoint(endpoint string) Option {
	return func(cfg *Config) { cfg.Endpoint = endpoint }
}

// WithTimeout bounds every lookup at the transport layer. The client imposes
// no timeout of its own.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *Config) { cfg.HTTPClient = newHTTPClient(timeout) }
}

func WithMaxResponseBytes(n int64) Option {
	return func(cfg *Config) { cfg.MaxResponseBytes = n }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *Config) { cfg.Logger = l }
}

// Apply returns cfg with opts applied and defaults filled in.
func (cfg Config) Apply(opts ...Option) Config {
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = newHTTPClient(0)
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = defaultMaxResponseBytes
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = l
	}
	return cfg
}
