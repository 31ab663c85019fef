package ipapi

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	FreeEndpoint = "http://ip-api.com/json"
	// ProEndpoint serves keyed accounts, over HTTPS only.
	ProEndpoint = "https://pro.ip-api.com/json"
)

// ResolveEndpoint picks the base URL for a deployment. Keyed accounts are
// pinned to ProEndpoint and cannot be overridden; free accounts may point at
// another plain-http endpoint (a mirror or a test server).
func ResolveEndpoint(override, accessKey string) (string, error) {
	override = strings.TrimSpace(override)
	if accessKey != "" {
		if override != "" {
			return "", fmt.Errorf("endpoint cannot be overridden when an access key is set; it is forced to %s", ProEndpoint)
		}
		return ProEndpoint, nil
	}
	if override == "" {
		return FreeEndpoint, nil
	}
	if err := validateFreeEndpoint(override); err != nil {
		return "", err
	}
	return override, nil
}

func validateFreeEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid ipapi endpoint %q: %v", endpoint, err)
	}
	scheme := strings.ToLower(strings.TrimSpace(u.Scheme))
	if scheme == "https" {
		return fmt.Errorf("ipapi endpoint %q uses https but no access key is set; free ip-api does not support SSL", endpoint)
	}
	if scheme != "http" {
		return fmt.Errorf("invalid ipapi endpoint %q: scheme must be http", endpoint)
	}
	if u.User != nil {
		return fmt.Errorf("invalid ipapi endpoint %q: userinfo not allowed", endpoint)
	}
	if strings.TrimSpace(u.Host) == "" {
		return fmt.Errorf("invalid ipapi endpoint %q: missing host", endpoint)
	}
	return nil
}
