package mocks

import (
	"sync"
)

// MockCheckIP implements common.CheckIP with a fixed trusted set and records
// every address it was asked about.
type MockCheckIP struct {
	Trusted map[string]bool

	mu      sync.Mutex
	Checked []string
}

func (m *MockCheckIP) CheckIPType(ip string) (int, error) {
	return 4, nil
}

func (m *MockCheckIP) CheckSubnets(subnets []string, clientAddr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Checked = append(m.Checked, clientAddr)
	return m.Trusted[clientAddr]
}

// MockNetAddr is a net.Addr with a fixed string form.
type MockNetAddr struct {
	Addr string
}

func (m *MockNetAddr) Network() string {
	return "tcp"
}

func (m *MockNetAddr) String() string {
	return m.Addr
}
