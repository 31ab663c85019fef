package geo

import (
	"net/http"
	"time"
)

// HTTPClient performs the single GET of a lookup. *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
