package lookup

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"patient-intake/internal/lookup/metrics"
	"patient-intake/pkg/platform/circuit"
	"patient-intake/pkg/platform/dedupe"
)

// Options tunes the service around the provider.
type Options struct {
	// MinQueryLength guards the provider: shorter queries return an empty
	// list without any network activity.
	MinQueryLength int

	// MaxResults caps the candidate list returned to callers.
	MaxResults int

	// FetchLimit is how many raw records to request from the provider before
	// dedup and capping.
	FetchLimit int

	// ProbeInterval is how often an open circuit lets a single request
	// through to test whether the provider recovered.
	ProbeInterval time.Duration
}

// Service answers autocomplete queries. Results are deduplicated by code,
// capped, and cached; provider trouble degrades to empty lists rather than
// failing the form.
type Service struct {
	provider Provider
	cache    Cache
	breaker  *circuit.Breaker
	group    singleflight.Group
	opts     Options
	logger   *slog.Logger
	metrics  *metrics.Metrics

	probeMu   sync.Mutex
	nextProbe time.Time
}

// NewService constructs a lookup service. cache may be nil to disable
// caching; metrics may be nil in tests.
func NewService(provider Provider, cache Cache, breaker *circuit.Breaker, opts Options, logger *slog.Logger, m *metrics.Metrics) *Service {
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = 2
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 20
	}
	if opts.FetchLimit <= 0 {
		opts.FetchLimit = 64
	}
	if opts.ProbeInterval <= 0 {
		opts.ProbeInterval = 10 * time.Second
	}
	return &Service{
		provider: provider,
		cache:    cache,
		breaker:  breaker,
		opts:     opts,
		logger:   logger,
		metrics:  m,
	}
}

// Cities returns city candidates for a free-text query.
func (s *Service) Cities(ctx context.Context, query string) []Candidate {
	query = strings.TrimSpace(query)
	if s.tooShort(query) {
		return []Candidate{}
	}

	key := "city:" + strings.ToLower(query)
	return s.search(ctx, "city", key, func(ctx context.Context) ([]Candidate, error) {
		return s.provider.Cities(ctx, query, s.opts.FetchLimit)
	})
}

// Streets returns street candidates for a free-text query within one city.
// An empty city code cannot be searched and yields an empty list.
func (s *Service) Streets(ctx context.Context, query, cityCode string) []Candidate {
	query = strings.TrimSpace(query)
	cityCode = strings.TrimSpace(cityCode)
	if s.tooShort(query) || cityCode == "" {
		return []Candidate{}
	}

	key := "street:" + cityCode + ":" + strings.ToLower(query)
	return s.search(ctx, "street", key, func(ctx context.Context) ([]Candidate, error) {
		return s.provider.Streets(ctx, query, cityCode, s.opts.FetchLimit)
	})
}

func (s *Service) tooShort(query string) bool {
	return len([]rune(query)) < s.opts.MinQueryLength
}

// allowProbe grants one request per probe interval while the circuit is open.
func (s *Service) allowProbe() bool {
	s.probeMu.Lock()
	defer s.probeMu.Unlock()

	now := time.Now()
	if now.Before(s.nextProbe) {
		return false
	}
	s.nextProbe = now.Add(s.opts.ProbeInterval)
	return true
}

func (s *Service) search(ctx context.Context, entity, key string, fetch func(context.Context) ([]Candidate, error)) []Candidate {
	if s.cache != nil {
		if candidates, ok := s.cache.Get(ctx, key); ok {
			s.metrics.IncrementCache(entity, "hit")
			return candidates
		}
		s.metrics.IncrementCache(entity, "miss")
	}

	if s.breaker != nil && s.breaker.IsOpen() && !s.allowProbe() {
		return []Candidate{}
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		start := time.Now()
		candidates, err := fetch(ctx)
		s.metrics.ObserveFetchLatency(entity, time.Since(start))
		return candidates, err
	})
	if err != nil {
		// A superseded (canceled) request is not a provider failure; the
		// caller already moved on and just needs an empty list.
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return []Candidate{}
		}

		s.metrics.IncrementProviderFailure(entity)
		if s.breaker != nil {
			if _, change := s.breaker.RecordFailure(); change.Opened {
				s.probeMu.Lock()
				s.nextProbe = time.Now().Add(s.opts.ProbeInterval)
				s.probeMu.Unlock()
				s.metrics.IncrementBreakerTransition("opened")
				s.logger.Warn("lookup provider circuit opened", "entity", entity)
			}
		}
		s.logger.Warn("lookup provider failed", "entity", entity, "error", err)
		return []Candidate{}
	}

	if s.breaker != nil {
		if _, change := s.breaker.RecordSuccess(); change.Closed {
			s.metrics.IncrementBreakerTransition("closed")
			s.logger.Info("lookup provider circuit closed", "entity", entity)
		}
	}

	candidates := dedupe.ByKey(result.([]Candidate), func(c Candidate) string { return c.Code })
	if len(candidates) > s.opts.MaxResults {
		candidates = candidates[:s.opts.MaxResults]
	}
	if candidates == nil {
		candidates = []Candidate{}
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, candidates)
	}
	return candidates
}
