package geo

import (
	"geolookup/common"
)

var checkIPs common.CheckIP = &common.CheckIPs{}

// ValidSubject accepts IP literals and RFC 1123 hostnames.
func ValidSubject(subject string) error {
	if subject == "" {
		return invalidRequestf("empty subject")
	}
	if _, err := checkIPs.CheckIPType(subject); err == nil {
		return nil
	}
	if !common.IsHostname(subject) {
		return invalidRequestf("subject %q is neither an IP address nor a hostname", subject)
	}
	return nil
}
