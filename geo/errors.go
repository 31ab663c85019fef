package geo

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidRequest is returned before any network activity when a lookup
// request cannot be turned into a URL.
var ErrInvalidRequest = errors.New("invalid request")

func invalidRequestf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// TransportError reports that the vendor could not be reached or answered
// with a non-2xx status.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: GET %s returned status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("transport error: GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that could not be decoded into the
// vendor's record.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

const redacted = "REDACTED"

// redactURL hides the credential value so it never ends up in logs or errors.
func redactURL(rawURL, key, credential string) string {
	if credential == "" || key == "" {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return strings.ReplaceAll(rawURL, url.QueryEscape(credential), redacted)
	}
	q := u.Query()
	if q.Has(key) {
		q.Set(key, redacted)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func newTransportError(rawURL string, statusCode int, err error) *TransportError {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = rawURL
	}
	return &TransportError{URL: rawURL, StatusCode: statusCode, Err: err}
}
