package course_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/honeycarbs/course-aggregator/internal/domain"
	"github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/pkg/httpx"
)

func TestInvoke_Success(t *testing.T) {
	p := &mockProvider{name: "p", courses: []domain.NormalizedCourse{{Title: "Go"}}}

	out := course.Invoke(context.Background(), p, []string{"go"}, 3, time.Second)
	if out.Err != nil {
		t.Fatalf("unexpected error: %v", out.Err)
	}
	if out.Provider != "p" || len(out.Courses) != 1 {
		t.Errorf("unexpected outcome %+v", out)
	}
}

func TestInvoke_TimeoutWhenProviderIgnoresContext(t *testing.T) {
	p := &mockProvider{name: "stuck", delay: 3 * time.Second, ignoreCtx: true}

	start := time.Now()
	out := course.Invoke(context.Background(), p, []string{"go"}, 3, 30*time.Millisecond)
	if time.Since(start) > time.Second {
		t.Errorf("invoker did not stop waiting at the deadline")
	}
	if !errors.Is(out.Err, course.ErrTimeout) {
		t.Errorf("expected timeout, got %v", out.Err)
	}
	if out.Courses != nil {
		t.Error("expected no courses on timeout")
	}
}

func TestInvoke_ParentCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := course.Invoke(ctx, &mockProvider{name: "p", delay: time.Second}, []string{"go"}, 1, time.Second)
	if !errors.Is(out.Err, course.ErrCanceled) {
		t.Errorf("expected canceled, got %v", out.Err)
	}
}

func TestInvoke_RecoversPanic(t *testing.T) {
	out := course.Invoke(context.Background(), &mockProvider{name: "p", panicMsg: "index out of range"}, []string{"go"}, 1, time.Second)
	if !errors.Is(out.Err, course.ErrUpstream) {
		t.Errorf("expected upstream error from panic, got %v", out.Err)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"401", &httpx.StatusError{StatusCode: http.StatusUnauthorized}, course.ErrAuthentication},
		{"403", &httpx.StatusError{StatusCode: http.StatusForbidden}, course.ErrAuthentication},
		{"429", &httpx.StatusError{StatusCode: http.StatusTooManyRequests, Header: http.Header{"Retry-After": {"5"}}}, course.ErrRateLimited},
		{"500", &httpx.StatusError{StatusCode: http.StatusInternalServerError}, course.ErrUpstream},
		{"404", &httpx.StatusError{StatusCode: http.StatusNotFound}, course.ErrUpstream},
		{"decode", &httpx.DecodeError{Err: errors.New("invalid character")}, course.ErrUpstream},
		{"transport", &httpx.TransportError{Err: errors.New("connection refused")}, course.ErrTransport},
		{"deadline through transport", &httpx.TransportError{Err: context.DeadlineExceeded}, course.ErrTimeout},
		{"canceled", context.Canceled, course.ErrCanceled},
		{"plain", errors.New("weird"), course.ErrUpstream},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := course.Classify("udemy", tc.err)
			if !errors.Is(got, tc.want) {
				t.Errorf("expected %v, got kind %s", tc.want, got.Kind)
			}
			if got.Provider != "udemy" {
				t.Errorf("expected provider to be set, got %q", got.Provider)
			}
		})
	}

	if course.Classify("x", nil) != nil {
		t.Error("Classify(nil) must be nil")
	}
}

func TestProviderError_Unwrap(t *testing.T) {
	se := &httpx.StatusError{StatusCode: http.StatusTooManyRequests}
	err := course.Classify("edx", se)

	var target *httpx.StatusError
	if !errors.As(err, &target) {
		t.Fatal("expected the status error to stay in the chain")
	}
	if errors.Is(err, course.ErrTimeout) {
		t.Error("rate limited error must not match timeout")
	}
}
