package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadConfigSuccess(t *testing.T) {
	path := writeConfig(t, `vendor: ipwhois
accessKey: "abc"
lang: de
fields: [ip, country, city]
timeout: 3s
maxResponseBytes: 4096
log:
  level: debug
  format: json
server:
  listen: "127.0.0.1:9000"
  recvProxyProtocol: true
  trustedProxies: ["10.0.0.0/8", "192.0.2.1"]
  proxyProtoTimeout: 2s
  cacheSize: 64
`)

	cfg, err := ReadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "ipwhois", cfg.Vendor)
	assert.Equal(t, "abc", cfg.AccessKey)
	assert.Equal(t, "de", cfg.Lang)
	assert.Equal(t, []string{"ip", "country", "city"}, cfg.Fields)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, int64(4096), cfg.MaxResponseBytes)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Listen)
	assert.True(t, cfg.Server.RecvProxyProtocol)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, cfg.Server.TrustedProxies)
	assert.Equal(t, 2*time.Second, cfg.Server.ProxyProtoTimeout)
	assert.Equal(t, 64, cfg.Server.CacheSize)
}

func TestReadConfigKeepsDefaults(t *testing.T) {
	cfg, err := ReadConfig(writeConfig(t, "lang: fr\n"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, "fr", cfg.Lang)
	assert.Equal(t, def.Vendor, cfg.Vendor)
	assert.Equal(t, def.Timeout, cfg.Timeout)
	assert.Equal(t, def.Server, cfg.Server)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestReadConfigInvalidYAML(t *testing.T) {
	_, err := ReadConfig(writeConfig(t, "fields: [:"))
	assert.Error(t, err)
}

func TestReadConfigUnknownKey(t *testing.T) {
	_, err := ReadConfig(writeConfig(t, "apiKey: abc\n"))
	assert.Error(t, err)
}

func TestReadConfigBadDuration(t *testing.T) {
	_, err := ReadConfig(writeConfig(t, "timeout: soon\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown vendor", mutate: func(c *Config) { c.Vendor = "maxmind" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, wantErr: true},
		{name: "negative max bytes", mutate: func(c *Config) { c.MaxResponseBytes = -1 }, wantErr: true},
		{name: "blank field", mutate: func(c *Config) { c.Fields = []string{"ip", " "} }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "proxy protocol without trusted proxies", mutate: func(c *Config) { c.Server.RecvProxyProtocol = true }, wantErr: true},
		{name: "negative cache", mutate: func(c *Config) { c.Server.CacheSize = -1 }, wantErr: true},
		{name: "negative proxy timeout", mutate: func(c *Config) { c.Server.ProxyProtoTimeout = -time.Second }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateIPOrCIDREntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		wantErr bool
	}{
		{name: "empty", entries: nil, wantErr: false},
		{name: "valid ip", entries: []string{"192.0.2.1"}, wantErr: false},
		{name: "valid ipv6", entries: []string{"2001:db8::1"}, wantErr: false},
		{name: "valid cidr", entries: []string{"192.0.2.0/24"}, wantErr: false},
		{name: "blank", entries: []string{" "}, wantErr: true},
		{name: "invalid ip", entries: []string{"999.0.0.1"}, wantErr: true},
		{name: "invalid cidr", entries: []string{"192.0.2.0/33"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateIPOrCIDREntries(tc.entries)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKnownVendor(t *testing.T) {
	assert.True(t, KnownVendor("ipapi"))
	assert.True(t, KnownVendor("ipapicom"))
	assert.True(t, KnownVendor("ipwhois"))
	assert.False(t, KnownVendor("IPAPI"))
}
