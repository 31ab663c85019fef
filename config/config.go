package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"geolookup/ipapi"
	"geolookup/ipapicom"
	"geolookup/ipwhois"
)

// Vendors lists the vendor names accepted by the vendor key.
var Vendors = []string{ipapi.Vendor, ipapicom.Vendor, ipwhois.Vendor}

type Config struct {
	Vendor           string        `yaml:"vendor"`
	AccessKey        string        `yaml:"accessKey"`
	Endpoint         string        `yaml:"endpoint"`
	Lang             string        `yaml:"lang"`
	Fields           []string      `yaml:"fields"`
	Timeout          time.Duration `yaml:"timeout"`
	MaxResponseBytes int64         `yaml:"maxResponseBytes"`
	Log              LogConfig     `yaml:"log"`
	Server           ServerConfig  `yaml:"server"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Listen            string        `yaml:"listen"`
	RecvProxyProtocol bool          `yaml:"recvProxyProtocol"`
	TrustedProxies    []string      `yaml:"trustedProxies"`
	ProxyProtoTimeout time.Duration `yaml:"proxyProtoTimeout"`
	CacheSize         int           `yaml:"cacheSize"`
}

func Default() *Config {
	return &Config{
		Vendor:  ipapi.Vendor,
		Timeout: 10 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Listen:            ":8080",
			ProxyProtoTimeout: 5 * time.Second,
			CacheSize:         1024,
		},
	}
}

// ReadConfig reads a YAML file over the defaults. Unknown keys are errors.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	err = yaml.UnmarshalStrict(data, config)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if !KnownVendor(c.Vendor) {
		return fmt.Errorf("unknown vendor %q; expected one of %s", c.Vendor, strings.Join(Vendors, ", "))
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative (got %s)", c.Timeout)
	}
	if c.MaxResponseBytes < 0 {
		return fmt.Errorf("maxResponseBytes must not be negative (got %d)", c.MaxResponseBytes)
	}
	for _, field := range c.Fields {
		if strings.TrimSpace(field) == "" {
			return fmt.Errorf("fields: empty field name")
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log format %q: expected text or json", c.Log.Format)
	}

	if err := validateIPOrCIDREntries(c.Server.TrustedProxies); err != nil {
		return fmt.Errorf("server trustedProxies: %w", err)
	}
	if c.Server.RecvProxyProtocol && len(c.Server.TrustedProxies) == 0 {
		return fmt.Errorf("server recvProxyProtocol requires trustedProxies")
	}
	if c.Server.ProxyProtoTimeout < 0 {
		return fmt.Errorf("server proxyProtoTimeout must not be negative (got %s)", c.Server.ProxyProtoTimeout)
	}
	if c.Server.CacheSize < 0 {
		return fmt.Errorf("server cacheSize must not be negative (got %d)", c.Server.CacheSize)
	}
	return nil
}

func KnownVendor(name string) bool {
	for _, v := range Vendors {
		if v == name {
			return true
		}
	}
	return false
}

func validateIPOrCIDREntries(entries []string) error {
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return fmt.Errorf("invalid IP/CIDR %q", entry)
		}
		if net.ParseIP(entry) != nil {
			continue
		}
		if _, _, err := net.ParseCIDR(entry); err == nil {
			continue
		}
		return fmt.Errorf("invalid IP/CIDR %q", entry)
	}
	return nil
}
