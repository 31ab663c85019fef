package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"geolookup/config"
	"geolookup/geo"
	"geolookup/ipapi"
	"geolookup/ipapicom"
	"geolookup/ipwhois"
	"geolookup/logger"
)

type vendorFactory func(cfg *config.Config, opts []geo.Option) (geo.Locator, error)

var vendors = map[string]vendorFactory{
	ipapi.Vendor: func(cfg *config.Config, opts []geo.Option) (geo.Locator, error) {
		key := geo.ResolveCredential(cfg.AccessKey, ipapi.EnvAccessKey, nil)
		endpoint, err := ipapi.ResolveEndpoint(cfg.Endpoint, key)
		if err != nil {
			return nil, err
		}
		return ipapi.New(key, append(opts, geo.WithEndpoint(endpoint))...), nil
	},
	ipapicom.Vendor: func(cfg *config.Config, opts []geo.Option) (geo.Locator, error) {
		key := geo.ResolveCredential(cfg.AccessKey, ipapicom.EnvAccessKey, nil)
		return ipapicom.New(key, withEndpoint(cfg, opts)...), nil
	},
	ipwhois.Vendor: func(cfg *config.Config, opts []geo.Option) (geo.Locator, error) {
		key := geo.ResolveCredential(cfg.AccessKey, ipwhois.EnvAPIKey, nil)
		return ipwhois.New(key, withEndpoint(cfg, opts)...), nil
	},
}

func withEndpoint(cfg *config.Config, opts []geo.Option) []geo.Option {
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		return append(opts, geo.WithEndpoint(endpoint))
	}
	return opts
}

// newLocator builds the configured vendor client.
func newLocator(cfg *config.Config, log logrus.FieldLogger) (geo.Locator, error) {
	factory, ok := vendors[cfg.Vendor]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVendor, cfg.Vendor)
	}

	opts := []geo.Option{geo.WithLogger(logger.Component(log, cfg.Vendor))}
	if cfg.Timeout > 0 {
		opts = append(opts, geo.WithTimeout(cfg.Timeout))
	}
	if cfg.MaxResponseBytes > 0 {
		opts = append(opts, geo.WithMaxResponseBytes(cfg.MaxResponseBytes))
	}
	return factory(cfg, opts)
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", s)
	}
	return d, nil
}
