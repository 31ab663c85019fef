package geo

import (
	"context"
	"strings"
)

// Record is implemented by every vendor's decoded lookup result.
type Record interface {
	// Success reports whether the vendor marked the lookup as successful.
	Success() bool
	// Address renders the location fields that are present, most specific first.
	Address() string
}

// Validator is implemented by records with fields the vendor always sends.
// req is the request that produced the body, so a field selection that
// excluded a required field is not a violation.
type Validator interface {
	Validate(req Request) error
}

// FailureReporter is implemented by records that can tell a failure the
// vendor reported apart from a status field the field selection left out.
type FailureReporter interface {
	Failed() bool
}

// Failed reports whether the vendor marked the lookup as failed. Records
// without a Failed method fall back to !Success().
func Failed(r Record) bool {
	if r == nil {
		return true
	}
	if f, ok := r.(FailureReporter); ok {
		return f.Failed()
	}
	return !r.Success()
}

// Locator is the vendor-agnostic view of a client.
type Locator interface {
	Locate(ctx context.Context, req Request) (Record, error)
}

// JoinAddress joins the present, non-blank parts with ", ".
func JoinAddress(parts ...*string) string {
	present := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == nil {
			continue
		}
		if s := strings.TrimSpace(*p); s != "" {
			present = append(present, s)
		}
	}
	return strings.Join(present, ", ")
}

// Selected reports whether field is part of the response for req: either no
// selection was made or the selection names it.
func Selected(req Request, field string) bool {
	if len(req.Fields) == 0 {
		return true
	}
	for _, f := range req.Fields {
		if f == field {
			return true
		}
	}
	return false
}
