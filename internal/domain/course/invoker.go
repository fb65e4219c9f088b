package course

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/honeycarbs/course-aggregator/internal/domain"
)

// Outcome is the result of one provider invocation; exactly one of Courses or Err is meaningful
type Outcome struct {
	Provider string
	Courses  []domain.NormalizedCourse
	Err      *ProviderError
	Elapsed  time.Duration
}

// Invoke calls one provider under a per-call deadline and never fails past its boundary.
// A provider that ignores ctx still yields a timeout outcome once the deadline fires.
func Invoke(ctx context.Context, p Provider, skills []string, limit int, timeout time.Duration) Outcome {
	name := p.Name()
	start := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		courses []domain.NormalizedCourse
		err     error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("provider panicked: %v", r)}
			}
		}()
		courses, err := p.Search(callCtx, skills, limit)
		done <- result{courses: courses, err: err}
	}()

	select {
	case res := <-done:
		out := Outcome{Provider: name, Elapsed: time.Since(start)}
		if res.err != nil {
			// prefer the deadline over whatever the aborted request surfaced
			if ctxErr := callCtx.Err(); ctxErr != nil {
				out.Err = Classify(name, fmt.Errorf("%w: %v", ctxErr, res.err))
			} else {
				out.Err = Classify(name, res.err)
			}
			return out
		}
		out.Courses = res.courses
		return out
	case <-callCtx.Done():
		err := callCtx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", err, timeout)
		}
		return Outcome{Provider: name, Err: Classify(name, err), Elapsed: time.Since(start)}
	}
}
