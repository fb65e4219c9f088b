// Package httpx performs single-shot JSON requests against catalog APIs and
// reports failures as typed errors callers can classify.
package httpx

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
)

const maxErrorBody = 4096

// StatusError carries status and body for non-2xx responses.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 300))
}

// RetryAfter reports the server-suggested wait, 0 when absent.
func (e *StatusError) RetryAfter() time.Duration {
	return ParseRetryAfter(e.Header)
}

// DecodeError reports a 2xx response whose body could not be decoded.
type DecodeError struct {
	URL  string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v body=%s", e.URL, e.Err, snippet(e.Body, 300))
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError wraps connectivity failures (dial, TLS, reset, aborted reads).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// GetJSON issues one GET and decodes a 2xx JSON body into out.
// The request is bound to ctx, so cancelling ctx aborts the transfer.
func GetJSON(ctx context.Context, client *http.Client, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br, gzip")

	resp, err := client.Do(req)
	if err != nil {
		return &TransportError{URL: redact(req), Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := readBody(resp)
	if err != nil {
		var cerr *contentError
		if !errors.As(err, &cerr) {
			return &TransportError{URL: redact(req), Err: err}
		}
		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return &DecodeError{URL: redact(req), Err: cerr.Err}
		}
		body = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &StatusError{
			Method:     req.Method,
			URL:        redact(req),
			StatusCode: resp.StatusCode,
			Header:     resp.Header.Clone(),
			Body:       body,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{URL: redact(req), Body: body, Err: err}
	}
	return nil
}

// contentError marks a body that arrived intact but could not be decompressed
type contentError struct{ Err error }

func (e *contentError) Error() string { return "content encoding: " + e.Err.Error() }

// wireReader remembers the first failure of the connection itself, so a
// decompressor error can be told apart from a broken transfer
type wireReader struct {
	r   io.Reader
	err error
}

func (w *wireReader) Read(p []byte) (int, error) {
	n, err := w.r.Read(p)
	if err != nil && err != io.EOF && w.err == nil {
		w.err = err
	}
	return n, err
}

func readBody(resp *http.Response) ([]byte, error) {
	wire := &wireReader{r: resp.Body}

	var r io.Reader = wire
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "br":
		r = brotli.NewReader(wire)
	case "gzip":
		gz, err := gzip.NewReader(wire)
		if err != nil {
			return nil, classifyRead(wire, err)
		}
		defer gz.Close()
		r = gz
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, classifyRead(wire, err)
	}
	return body, nil
}

func classifyRead(wire *wireReader, err error) error {
	if wire.err != nil {
		return wire.err
	}
	return &contentError{Err: err}
}

// redact drops the query string, which may carry API keys.
func redact(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""
	return u.String()
}

// ParseRetryAfter parses a Retry-After header (seconds or HTTP date).
// Returns 0 when the header is missing or invalid.
func ParseRetryAfter(h http.Header) time.Duration {
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
