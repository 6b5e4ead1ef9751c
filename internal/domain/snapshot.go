package domain

import "time"

// ResponseSnapshot is the persisted form of one response. Field names
// are the stable on-disk contract; context and photo_file may be null.
type ResponseSnapshot struct {
	Context   *string   `json:"context"`
	Section   string    `json:"section"`
	Item      string    `json:"item"`
	Note      string    `json:"note"`
	Rating    Rating    `json:"rating"`
	Comment   string    `json:"comment"`
	PhotoFile *string   `json:"photo_file"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionSnapshot is the full serialized session.
type SessionSnapshot struct {
	SessionID   string             `json:"session_id"`
	HotelInfo   HotelInfo          `json:"hotel_info"`
	AuditorName string             `json:"auditor_name"`
	Timestamp   time.Time          `json:"timestamp"`
	Responses   []ResponseSnapshot `json:"responses"`
}

func (s *AuditSession) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sn := SessionSnapshot{
		SessionID:   s.SessionID,
		HotelInfo:   s.HotelInfo,
		AuditorName: s.AuditorName,
		Timestamp:   s.Timestamp,
		Responses:   make([]ResponseSnapshot, 0, len(s.responses)),
	}
	for _, r := range s.responses {
		sn.Responses = append(sn.Responses, ResponseSnapshot{
			Context:   r.Context,
			Section:   r.Item.Section,
			Item:      r.Item.Item,
			Note:      r.Item.Note,
			Rating:    r.Rating,
			Comment:   r.Comment,
			PhotoFile: r.PhotoRef,
			Timestamp: r.Timestamp,
		})
	}
	return sn
}

// SessionFromSnapshot rebuilds a session, preserving response order and
// timestamps exactly as persisted.
func SessionFromSnapshot(sn SessionSnapshot) *AuditSession {
	s := &AuditSession{
		SessionID:   sn.SessionID,
		HotelInfo:   sn.HotelInfo,
		AuditorName: sn.AuditorName,
		Timestamp:   sn.Timestamp,
	}
	for _, r := range sn.Responses {
		item := ChecklistItem{Section: r.Section, Item: r.Item, Note: r.Note}
		s.responses = append(s.responses, AuditResponse{
			Item:      item,
			Rating:    r.Rating,
			Comment:   r.Comment,
			PhotoRef:  r.PhotoFile,
			Context:   r.Context,
			Timestamp: r.Timestamp,
		})
	}
	return s
}
