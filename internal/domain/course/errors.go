package course

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/honeycarbs/course-aggregator/pkg/httpx"
)

// ErrorKind classifies a provider-scoped failure
type ErrorKind string

const (
	KindAuthentication ErrorKind = "authentication"
	KindRateLimited    ErrorKind = "rate_limited"
	KindUpstream       ErrorKind = "upstream"
	KindTransport      ErrorKind = "transport"
	KindTimeout        ErrorKind = "timeout"
	KindCanceled       ErrorKind = "canceled"
)

// Sentinels for errors.Is matching against a *ProviderError
var (
	ErrAuthentication = &ProviderError{Kind: KindAuthentication}
	ErrRateLimited    = &ProviderError{Kind: KindRateLimited}
	ErrUpstream       = &ProviderError{Kind: KindUpstream}
	ErrTransport      = &ProviderError{Kind: KindTransport}
	ErrTimeout        = &ProviderError{Kind: KindTimeout}
	ErrCanceled       = &ProviderError{Kind: KindCanceled}
)

// ProviderError is a failure confined to one provider's bucket
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	var msg string
	switch e.Kind {
	case KindAuthentication:
		msg = "authentication failed"
	case KindRateLimited:
		msg = "rate limit exceeded"
	case KindTimeout:
		msg = "request timed out"
	case KindCanceled:
		msg = "search canceled"
	case KindTransport:
		msg = "connection error"
	default:
		msg = "upstream error"
	}
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Is matches any *ProviderError of the same kind
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Classify maps an adapter error onto the provider error taxonomy
func Classify(provider string, err error) *ProviderError {
	if err == nil {
		return nil
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		if pe.Provider == "" {
			return &ProviderError{Provider: provider, Kind: pe.Kind, Err: pe.Err}
		}
		return pe
	}

	kind := KindUpstream

	var (
		statusErr    *httpx.StatusError
		decodeErr    *httpx.DecodeError
		transportErr *httpx.TransportError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.Is(err, context.Canceled):
		kind = KindCanceled
	case errors.As(err, &statusErr):
		kind = kindForStatus(statusErr.StatusCode)
		if kind == KindRateLimited {
			if wait := statusErr.RetryAfter(); wait > 0 {
				err = fmt.Errorf("%w (retry after %s)", err, wait)
			}
		}
	case errors.As(err, &decodeErr):
		kind = KindUpstream
	case errors.As(err, &transportErr):
		kind = KindTransport
	}

	return &ProviderError{Provider: provider, Kind: kind, Err: err}
}

func kindForStatus(code int) ErrorKind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindAuthentication
	case code == http.StatusTooManyRequests:
		return KindRateLimited
	default:
		return KindUpstream
	}
}
