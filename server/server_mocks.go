package server

import (
	"context"
	"fmt"
	"net"
	"sync"

	"geolookup/geo"
)

// MockNetListener hands out Listener, or fails when SendError is set.
type MockNetListener struct {
	SendError bool
	Listener  net.Listener
}

func (m *MockNetListener) Listen(network, address string) (net.Listener, error) {
	if m.SendError {
		return nil, fmt.Errorf("NetListener error")
	}
	return m.Listener, nil
}

type MockRecord struct {
	IP string `json:"ip"`
	OK bool   `json:"ok"`
}

func (r MockRecord) Success() bool   { return r.OK }
func (r MockRecord) Address() string { return "Somewhere, " + r.IP }

// MockLocator answers with LocateFunc and remembers every request.
type MockLocator struct {
	LocateFunc func(req geo.Request) (geo.Record, error)

	mu       sync.Mutex
	requests []geo.Request
}

func (m *MockLocator) Locate(_ context.Context, req geo.Request) (geo.Record, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.LocateFunc == nil {
		return MockRecord{IP: req.Subject, OK: true}, nil
	}
	return m.LocateFunc(req)
}

func (m *MockLocator) Requests() []geo.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]geo.Request(nil), m.requests...)
}
