package common

import (
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/sirupsen/logrus"
)

type CheckIP interface {
	CheckIPType(ip string) (int, error)
	CheckSubnets(subnets []string, clientAddr string) bool
}

// CheckIPs reports skipped subnet entries through Logger; a nil Logger
// discards them.
type CheckIPs struct {
	Logger logrus.FieldLogger
}

func (c *CheckIPs) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (c *CheckIPs) CheckIPType(ip string) (int, error) {
	ipaddr := net.ParseIP(ip)

	if ipaddr == nil {
		return 0, fmt.Errorf("failed to parse ip")
	}

	if ipaddr.To4() != nil {
		return 4, nil
	}

	return 6, nil
}

// CheckSubnets reports whether clientAddr falls inside any entry. Bare IPs are
// treated as single-host networks; unparsable entries are skipped.
func (c *CheckIPs) CheckSubnets(subnets []string, clientAddr string) bool {
	client := net.ParseIP(clientAddr)
	if client == nil {
		return false
	}
	log := c.logger()
	for _, ip := range subnets {
		ip = strings.TrimSpace(ip)
		if !strings.Contains(ip, "/") {
			ipType, err := c.CheckIPType(ip)
			if err != nil {
				log.WithError(err).WithField("entry", ip).Warn("Failed to check IP type")
				continue
			}
			if ipType == 4 {
				ip += "/32"
			} else {
				ip += "/128"
			}
		}
		_, subnet, err := net.ParseCIDR(ip)
		if err != nil {
			log.WithError(err).WithField("entry", ip).Warn("Failed to parse CIDR")
			continue
		}
		if subnet.Contains(client) {
			return true
		}
	}
	return false
}

// IsHostname checks RFC 1123 syntax: dot-separated labels of letters, digits
// and hyphens, 1-63 bytes each, no leading or trailing hyphen, 253 bytes total.
// A single trailing dot is allowed.
func IsHostname(host string) bool {
	host = strings.TrimSuffix(host, ".")
	if host == "" || len(host) > 253 {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			b := label[i]
			switch {
			case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '-':
			default:
				return false
			}
		}
	}
	return true
}

// SplitList splits a comma-separated list, trimming blanks and dropping empty
// entries. Order and duplicates are preserved.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
