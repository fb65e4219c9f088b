package course

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/honeycarbs/course-aggregator/internal/domain"
	"github.com/honeycarbs/course-aggregator/pkg/logging"
)

// DefaultTimeout bounds a single provider call
const DefaultTimeout = 10 * time.Second

type Service interface {
	Search(ctx context.Context, req domain.SearchRequest) (domain.AggregatedResponse, error)
	Providers() []string
}

// Option configures Service
type Option func(*config)

type config struct {
	providers []Provider
	timeout   time.Duration
	price     PriceParser
	log       *logging.Logger
}

// WithProviders sets course providers; their order is the response order
func WithProviders(providers ...Provider) Option {
	return func(c *config) {
		c.providers = providers
	}
}

// WithTimeout sets the per-provider call timeout
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithPriceParser sets the numeric price derivation
func WithPriceParser(p PriceParser) Option {
	return func(c *config) {
		c.price = p
	}
}

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		timeout: DefaultTimeout,
		price:   DerivePrice,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.providers) == 0 {
		return nil, fmt.Errorf("course.Service: at least one provider is required")
	}
	if cfg.timeout <= 0 {
		return nil, fmt.Errorf("course.Service: timeout must be positive, got %s", cfg.timeout)
	}
	seen := make(map[string]struct{}, len(cfg.providers))
	for _, p := range cfg.providers {
		if p == nil {
			return nil, fmt.Errorf("course.Service: nil provider")
		}
		if _, dup := seen[p.Name()]; dup {
			return nil, fmt.Errorf("course.Service: duplicate provider %q", p.Name())
		}
		seen[p.Name()] = struct{}{}
	}
	if cfg.price == nil {
		cfg.price = DerivePrice
	}
	if cfg.log == nil {
		cfg.log = logging.NewNop()
	}

	return &service{
		providers: cfg.providers,
		timeout:   cfg.timeout,
		price:     cfg.price,
		log:       cfg.log,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(providers []Provider, timeout time.Duration, price PriceParser, log *logging.Logger) (Service, error) {
	return NewService(
		WithProviders(providers...),
		WithTimeout(timeout),
		WithPriceParser(price),
		WithLogger(log),
	)
}

type service struct {
	providers []Provider
	timeout   time.Duration
	price     PriceParser
	log       *logging.Logger
}

func (s *service) Providers() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name()
	}
	return names
}

// Search fans out to every provider, waits for all of them, then filters and
// ranks each bucket independently
func (s *service) Search(ctx context.Context, req domain.SearchRequest) (domain.AggregatedResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.AggregatedResponse{}, err
	}

	log := s.log.With("search_id", uuid.NewString())
	start := time.Now()

	outcomes := make([]Outcome, len(s.providers))
	var wg sync.WaitGroup
	for i, p := range s.providers {
		wg.Go(func() {
			outcomes[i] = Invoke(ctx, p, req.Skills, req.LimitPerProvider, s.timeout)
		})
	}
	wg.Wait()

	buckets := make([]domain.Bucket, len(outcomes))
	failed := 0
	for i, o := range outcomes {
		if o.Err != nil {
			failed++
			log.Warn("provider failed",
				"provider", o.Provider,
				"kind", string(o.Err.Kind),
				"error", o.Err.Error(),
				"elapsed", o.Elapsed,
			)
			msg := o.Err.Error()
			buckets[i] = domain.Bucket{Provider: o.Provider, Error: &msg, Kind: string(o.Err.Kind)}
			continue
		}
		buckets[i] = domain.Bucket{Provider: o.Provider, Courses: s.pipeline(o.Provider, o.Courses, req)}
	}

	log.Info("search completed",
		"skills", req.Skills,
		"providers", len(outcomes),
		"succeeded", len(outcomes)-failed,
		"failed", failed,
		"duration", time.Since(start),
	)

	return domain.NewAggregatedResponse(buckets), nil
}

func (s *service) pipeline(provider string, courses []domain.NormalizedCourse, req domain.SearchRequest) []domain.NormalizedCourse {
	prepared := make([]domain.NormalizedCourse, len(courses))
	for i, c := range courses {
		c.Provider = provider
		c.NumericPrice = s.price(c.Price)
		prepared[i] = c
	}
	return Rank(Filter(prepared, req.Filters, req.PriceRange), req.SortBy)
}
