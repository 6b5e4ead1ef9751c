package app

import (
	"context"
	"time"

	"hotel_audit/internal/domain"
)

// SessionSource is the read-side view of the active session.
type SessionSource interface {
	Current() (*domain.AuditSession, bool)
}

type QueryService struct {
	src      SessionSource
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(src SessionSource, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{src: src, cache: c, cacheTTL: ttl}
}

func (s *QueryService) Summary(ctx context.Context) (domain.SessionSummary, error) {
	var sum domain.SessionSummary
	if ok, _ := s.cache.Get(ctx, cacheKeySummary, &sum); ok {
		return sum, nil
	}
	sess, ok := s.src.Current()
	if !ok {
		return domain.SessionSummary{}, ErrNoSession
	}
	sum = sess.Summary()
	_ = s.cache.Set(ctx, cacheKeySummary, sum, s.cacheTTL)
	return sum, nil
}

// Sections returns the grouped history, sections in first-seen order.
func (s *QueryService) Sections(ctx context.Context) ([]domain.SectionResponses, error) {
	var out []domain.SectionResponses
	if ok, _ := s.cache.Get(ctx, cacheKeySections, &out); ok {
		return out, nil
	}
	sess, ok := s.src.Current()
	if !ok {
		return nil, ErrNoSession
	}
	out = sess.ResponsesBySection()
	_ = s.cache.Set(ctx, cacheKeySections, out, s.cacheTTL)
	return out, nil
}

// ForKey returns the full history for one key. Not cached: clients use
// it while actively editing the item.
func (s *QueryService) ForKey(key domain.ResponseKey) ([]domain.AuditResponse, error) {
	sess, ok := s.src.Current()
	if !ok {
		return nil, ErrNoSession
	}
	return sess.AllFor(key), nil
}

// Latest returns the response the form should show for a key.
func (s *QueryService) Latest(key domain.ResponseKey) (domain.AuditResponse, bool, error) {
	sess, ok := s.src.Current()
	if !ok {
		return domain.AuditResponse{}, false, ErrNoSession
	}
	r, found := sess.Latest(key)
	return r, found, nil
}
