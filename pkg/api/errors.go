package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed lookup
type ErrorKind int

const (
	KindTransient    ErrorKind = iota // timeouts, connection resets, 5xx
	KindRateLimited                   // 429 or provider throttling
	KindMalformed                     // unparsable or unexpected payload
	KindUnauthorized                  // 401/403, bad signature
	KindUnavailable                   // source not configured
	KindCanceled                      // caller context done
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindRateLimited:
		return "rate_limited"
	case KindMalformed:
		return "malformed"
	case KindUnauthorized:
		return "unauthorized"
	case KindUnavailable:
		return "unavailable"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// LookupError is the error returned by every source in this package.
type LookupError struct {
	Source string
	Kind   ErrorKind
	Status int
	Err    error
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("%s lookup %s", e.Source, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Retryable reports whether a retry may succeed.
func (e *LookupError) Retryable() bool {
	return e.Kind == KindTransient
}

// ErrNotConfigured is wrapped by lookups against sources without credentials.
var ErrNotConfigured = errors.New("credentials not configured")

func unavailable(source string) *LookupError {
	return &LookupError{Source: source, Kind: KindUnavailable, Err: ErrNotConfigured}
}

// KindOf extracts the kind of err, classifying foreign errors by message.
func KindOf(err error) ErrorKind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ClassifyError(err)
}

// ClassifyStatus maps an HTTP status to an error kind.
func ClassifyStatus(status int) ErrorKind {
	switch {
	case status == 401 || status == 403:
		return KindUnauthorized
	case status == 429:
		return KindRateLimited
	case status >= 500:
		return KindTransient
	default:
		return KindMalformed
	}
}

// ClassifyError classifies errors that did not come from this package.
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return KindTransient
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTransient
	}
	if errors.Is(err, ErrNotConfigured) {
		return KindUnavailable
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "429"):
		return KindRateLimited
	case strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "unauthorized") || strings.Contains(errStr, "forbidden"):
		return KindUnauthorized
	case strings.Contains(errStr, "decode") || strings.Contains(errStr, "invalid character") ||
		strings.Contains(errStr, "unexpected end of json"):
		return KindMalformed
	default:
		return KindTransient
	}
}

func wrap(source string, err error) *LookupError {
	var le *LookupError
	if errors.As(err, &le) {
		return le
	}
	return &LookupError{Source: source, Kind: ClassifyError(err), Err: err}
}
