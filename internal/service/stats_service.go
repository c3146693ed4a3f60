package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/repository"
)

const statsCacheKey = "triage:stats:summary"

// StatsService derives summary statistics from the full ticket
// collection. Summaries are always recomputed whole, never patched
// incrementally; redis only memoizes the latest computation and every
// ticket mutation drops the memo.
type StatsService struct {
	tickets  repository.TicketRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewStatsService constructs the service. The cache client may be nil,
// in which case every request recomputes.
func NewStatsService(tickets repository.TicketRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *StatsService {
	return &StatsService{tickets: tickets, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Subscribe registers cache invalidation on ticket mutations.
func (s *StatsService) Subscribe(dispatcher events.Dispatcher) {
	handler := func(ctx context.Context, _ events.Event) error {
		s.Invalidate(ctx)
		return nil
	}
	dispatcher.Subscribe(events.EventTicketCreated, handler)
	dispatcher.Subscribe(events.EventTicketStatusChanged, handler)
}

// GetStats returns the current summary, from cache when fresh.
// Cache failures degrade to a direct recompute.
func (s *StatsService) GetStats(ctx context.Context) (domain.StatsSummary, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return domain.StatsSummary{}, err
	}
	summary := domain.ComputeStats(tickets)
	s.storeCache(ctx, summary)
	return summary, nil
}

// Invalidate drops the memoized summary after a ticket mutation.
func (s *StatsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate stats cache", zap.Error(err))
	}
}

func (s *StatsService) fromCache(ctx context.Context) (domain.StatsSummary, bool) {
	if s.cache == nil {
		return domain.StatsSummary{}, false
	}
	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
		return domain.StatsSummary{}, false
	}
	var summary domain.StatsSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		s.logger.Warn("stats cache entry malformed", zap.Error(err))
		return domain.StatsSummary{}, false
	}
	return summary, true
}

func (s *StatsService) storeCache(ctx context.Context, summary domain.StatsSummary) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
}
