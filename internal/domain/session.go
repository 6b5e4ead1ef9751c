package domain

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrMissingIdentity is returned when a session is started without the
// required identifying fields.
var ErrMissingIdentity = errors.New("hotel name and auditor name are required")

type GuestroomType struct {
	Name string `json:"name"`
	Size string `json:"size"`
	Keys string `json:"keys"`
}

// HotelInfo carries the property metadata gathered before an audit
// starts. Zero-valued numerics mean "not provided" and render as N/A.
type HotelInfo struct {
	Name           string          `json:"name"`
	City           string          `json:"city"`
	Country        string          `json:"country"`
	YearOpened     int             `json:"year_opened"`
	Floors         int             `json:"floors"`
	TotalRooms     int             `json:"total_rooms"`
	FnBOutlets     []string        `json:"fnb_outlets"`
	MeetingRooms   []string        `json:"meeting_rooms"`
	GuestroomTypes []GuestroomType `json:"guestroom_types"`
}

// AuditSession owns the ordered response history for one audit run.
// Responses are an append-only log: recording a second answer for the
// same key keeps the earlier one, and "current" reads pick the latest.
// The identifying fields are immutable after construction; the history
// carries its own lock because queries, exports and snapshots read it
// while the form keeps recording.
type AuditSession struct {
	SessionID   string
	HotelInfo   HotelInfo
	AuditorName string
	Timestamp   time.Time

	mu        sync.RWMutex
	responses []AuditResponse
}

// NewAuditSession validates the identifying fields and derives the
// session id from the hotel name and the creation instant. The id is
// only second-resolution: two sessions for the same hotel started
// within the same second collide. Known gap, kept as-is.
func NewAuditSession(info HotelInfo, auditor string) (*AuditSession, error) {
	if strings.TrimSpace(info.Name) == "" || strings.TrimSpace(auditor) == "" {
		return nil, ErrMissingIdentity
	}
	now := time.Now().UTC()
	safeName := strings.ReplaceAll(info.Name, " ", "_")
	return &AuditSession{
		SessionID:   fmt.Sprintf("%s_%s", safeName, now.Format("20060102_150405")),
		HotelInfo:   info,
		AuditorName: auditor,
		Timestamp:   now,
	}, nil
}

// AddResponse appends unconditionally: no dedup, no rating validation.
func (s *AuditSession) AddResponse(r AuditResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, r)
}

// Responses returns a copy of the full history in insertion order.
func (s *AuditSession) Responses() []AuditResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AuditResponse, len(s.responses))
	copy(out, s.responses)
	return out
}

func (s *AuditSession) ResponseCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.responses)
}

// AllFor returns every response recorded for the key, oldest first.
func (s *AuditSession) AllFor(key ResponseKey) []AuditResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []AuditResponse
	for _, r := range s.responses {
		if r.Key() == key {
			out = append(out, r)
		}
	}
	return out
}

// Latest returns the most recently appended response for the key.
func (s *AuditSession) Latest(key ResponseKey) (AuditResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.responses) - 1; i >= 0; i-- {
		if s.responses[i].Key() == key {
			return s.responses[i], true
		}
	}
	return AuditResponse{}, false
}

// RemoveAll deletes every response matching the key and reports how
// many were removed. All other responses keep their relative order.
func (s *AuditSession) RemoveAll(key ResponseKey) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.responses[:0]
	removed := 0
	for _, r := range s.responses {
		if r.Key() == key {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.responses = kept
	return removed
}

// SectionResponses is one partition of the history: a section name and
// its responses in original insertion order.
type SectionResponses struct {
	Section   string
	Responses []AuditResponse
}

// ResponsesBySection partitions the history by section, sections in
// first-seen order. Sections with no responses do not appear.
func (s *AuditSession) ResponsesBySection() []SectionResponses {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var groups []SectionResponses
	index := map[string]int{}
	for _, r := range s.responses {
		sec := r.Item.Section
		i, ok := index[sec]
		if !ok {
			i = len(groups)
			index[sec] = i
			groups = append(groups, SectionResponses{Section: sec})
		}
		groups[i].Responses = append(groups[i].Responses, r)
	}
	return groups
}

type SessionSummary struct {
	SessionID     string    `json:"session_id"`
	Hotel         HotelInfo `json:"hotel"`
	Auditor       string    `json:"auditor"`
	ResponseCount int       `json:"responses_count"`
	Timestamp     time.Time `json:"timestamp"`
}

func (s *AuditSession) Summary() SessionSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionSummary{
		SessionID:     s.SessionID,
		Hotel:         s.HotelInfo,
		Auditor:       s.AuditorName,
		ResponseCount: len(s.responses),
		Timestamp:     s.Timestamp,
	}
}
