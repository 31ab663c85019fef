package server

import (
	"net"
	"time"

	proxyproto "github.com/pires/go-proxyproto"
	"github.com/sirupsen/logrus"

	"geolookup/common"
)

type NetListener interface {
	Listen(network, address string) (net.Listener, error)
}

type RealNetListener struct{}

func (rnl *RealNetListener) Listen(network, address string) (net.Listener, error) {
	return net.Listen(network, address)
}

// proxyPolicy accepts PROXY headers only from trusted upstreams. A header from
// anyone else rejects the connection; plain connections are always served.
func proxyPolicy(checker common.CheckIP, trusted []string, log logrus.FieldLogger) proxyproto.PolicyFunc {
	return func(upstream net.Addr) (proxyproto.Policy, error) {
		host, _, err := net.SplitHostPort(upstream.String())
		if err != nil {
			host = upstream.String()
		}
		if checker.CheckSubnets(trusted, host) {
			return proxyproto.USE, nil
		}
		log.WithField("upstream", host).Debug("PROXY header not accepted from untrusted upstream")
		return proxyproto.REJECT, nil
	}
}

func wrapProxyProtocol(l net.Listener, checker common.CheckIP, trusted []string, timeout time.Duration, log logrus.FieldLogger) net.Listener {
	return &proxyproto.Listener{
		Listener:          l,
		Policy:            proxyPolicy(checker, trusted, log),
		ReadHeaderTimeout: timeout,
	}
}
