package geo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Request is one lookup. An empty Subject asks the vendor for the caller's
// own address, where the vendor allows it.
type Request struct {
	Subject string
	Lang    string
	Fields  []string
}

// Client turns Requests into exactly one GET each and decodes the body into T.
// It holds only immutable configuration and is safe for concurrent use.
type Client[T any] struct {
	cfg Config
}

func NewClient[T any](cfg Config) *Client[T] {
	return &Client[T]{cfg: cfg.Apply()}
}

func (c *Client[T]) Config() Config {
	return c.cfg
}

func (c *Client[T]) URL(req Request) (string, error) {
	u, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return "", invalidRequestf("endpoint %q: %v", c.cfg.Endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", invalidRequestf("endpoint %q: missing scheme or host", c.cfg.Endpoint)
	}

	q := u.Query()
	if req.Lang != "" {
		q.Set(c.cfg.LangKey, req.Lang)
	}
	if len(req.Fields) > 0 {
		q.Set(c.cfg.FieldsKey, strings.Join(req.Fields, ","))
	}
	if c.cfg.Credential != "" {
		q.Set(c.cfg.CredentialKey, c.cfg.Credential)
	}
	u.RawQuery = q.Encode()

	if req.Subject == "" {
		if c.cfg.SubjectRequired {
			return "", invalidRequestf("%s requires a subject", c.cfg.Vendor)
		}
		return u.String(), nil
	}
	if err := ValidSubject(req.Subject); err != nil {
		return "", err
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + req.Subject
	u.RawPath = ""
	return u.String(), nil
}

func (c *Client[T]) Lookup(ctx context.Context, req Request) (*T, error) {
	rawURL, err := c.URL(req)
	if err != nil {
		return nil, err
	}
	safeURL := redactURL(rawURL, c.cfg.CredentialKey, c.cfg.Credential)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, invalidRequestf("failed to create request: %v", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.cfg.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, newTransportError(safeURL, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, c.cfg.MaxResponseBytes))
		return nil, newTransportError(safeURL, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxResponseBytes+1))
	if err != nil {
		return nil, newTransportError(safeURL, 0, fmt.Errorf("failed to read response: %w", err))
	}
	record, err := c.decode(body)
	if err != nil {
		return nil, err
	}
	if v, ok := any(record).(Validator); ok {
		if err := v.Validate(req); err != nil {
			return nil, &DecodeError{Err: err}
		}
	}

	fields := logrus.Fields{
		"vendor":  c.cfg.Vendor,
		"subject": req.Subject,
		"latency": time.Since(start),
	}
	if r, ok := any(record).(Record); ok {
		fields["success"] = r.Success()
	}
	c.cfg.Logger.WithFields(fields).Debug("Resolved geo location")

	return record, nil
}

func (c *Client[T]) decode(body []byte) (*T, error) {
	if int64(len(body)) > c.cfg.MaxResponseBytes {
		return nil, &DecodeError{Err: fmt.Errorf("%s response exceeds %d bytes", c.cfg.Vendor, c.cfg.MaxResponseBytes)}
	}
	if !json.Valid(body) {
		return nil, &DecodeError{Err: fmt.Errorf("%s response is not valid JSON", c.cfg.Vendor)}
	}
	var record T
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("failed to decode %s response: %w", c.cfg.Vendor, err)}
	}
	return &record, nil
}
