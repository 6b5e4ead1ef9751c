package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"hotel_audit/internal/adapters/observability"
	"hotel_audit/internal/catalog"
	"hotel_audit/internal/domain"
)

var ErrNoSession = errors.New("no active audit session")

// Cache keys for the active-session read models. One session at a time
// per process, so the keys carry no id.
const (
	cacheKeySummary  = "audit:summary"
	cacheKeySections = "audit:sections"
)

// AuditService owns the single active session. The service mutex
// guards the session pointer (start swaps it, everything else resolves
// it); the session itself synchronizes its response history, so read
// paths that escape via Current are safe while the form keeps
// recording.
type AuditService struct {
	mu        sync.Mutex
	cat       *catalog.Catalog
	snapshots domain.SnapshotStore
	photos    domain.PhotoStore
	cache     domain.Cache

	session *domain.AuditSession
}

func NewAuditService(cat *catalog.Catalog, snapshots domain.SnapshotStore, photos domain.PhotoStore, cache domain.Cache) *AuditService {
	return &AuditService{cat: cat, snapshots: snapshots, photos: photos, cache: cache}
}

func (s *AuditService) Catalog() *catalog.Catalog { return s.cat }

// Start validates the identifying fields and replaces any active
// session. A replaced session is gone unless it was snapshotted.
func (s *AuditService) Start(ctx context.Context, info domain.HotelInfo, auditor string) (domain.SessionSummary, error) {
	sess, err := domain.NewAuditSession(info, auditor)
	if err != nil {
		return domain.SessionSummary{}, err
	}
	s.mu.Lock()
	prev := s.session
	s.session = sess
	s.mu.Unlock()
	if prev != nil {
		log.Info().Str("session", prev.SessionID).Msg("previous audit session discarded")
	}
	s.invalidate(ctx)
	log.Info().Str("session", sess.SessionID).Str("hotel", info.Name).Msg("audit session started")
	return sess.Summary(), nil
}

// Current exposes the active session to read paths and exporters.
func (s *AuditService) Current() (*domain.AuditSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.session != nil
}

type RecordRequest struct {
	Section  string
	Item     string
	Rating   string
	Comment  string
	PhotoRef *string
	Context  *string
}

// Record appends a response. Nothing is rejected: out-of-catalog
// sections and unrecognized ratings are logged and kept verbatim, the
// UI is responsible for constraining its inputs.
func (s *AuditService) Record(ctx context.Context, req RecordRequest) (domain.AuditResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.AuditResponse{}, ErrNoSession
	}
	if !s.cat.Has(req.Section) {
		log.Debug().Str("section", req.Section).Msg("section not in catalog")
	}
	rating := domain.ParseRating(req.Rating)
	if !rating.Known() {
		log.Warn().Str("rating", req.Rating).Msg("unrecognized rating recorded verbatim")
	}
	r := domain.NewAuditResponse(domain.NewChecklistItem(req.Section, req.Item), rating, req.Comment, req.PhotoRef, req.Context)
	s.session.AddResponse(r)
	observability.ObserveResponse(req.Section)
	s.invalidate(ctx)
	return r, nil
}

// Clear removes every response for the key and reports how many went.
func (s *AuditService) Clear(ctx context.Context, key domain.ResponseKey) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return 0, ErrNoSession
	}
	removed := s.session.RemoveAll(key)
	if removed > 0 {
		s.invalidate(ctx)
	}
	return removed, nil
}

// SaveSnapshot persists the active session. The returned path is only
// meaningful when err is nil.
func (s *AuditService) SaveSnapshot(ctx context.Context) (string, error) {
	s.mu.Lock()
	sess := s.session
	s.mu.Unlock()
	if sess == nil {
		return "", ErrNoSession
	}
	path, err := s.snapshots.SaveSnapshot(ctx, sess.Snapshot())
	observability.ObserveExport("snapshot", err)
	if err != nil {
		log.Error().Err(err).Str("session", sess.SessionID).Msg("snapshot save failed")
		return "", err
	}
	log.Info().Str("path", path).Msg("session snapshot saved")
	return path, nil
}

// SavePhoto stores the upload and returns the opaque reference to put
// on a response.
func (s *AuditService) SavePhoto(ctx context.Context, name string, data []byte) (string, error) {
	ref, err := s.photos.SavePhoto(ctx, name, data)
	if err != nil {
		log.Error().Err(err).Str("name", name).Msg("photo save failed")
		return "", err
	}
	return ref, nil
}

func (s *AuditService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, cacheKeySummary)
	_ = s.cache.Del(ctx, cacheKeySections)
}
