package domain

import "time"

// AuditResponse is one recorded answer to a checklist item. Nothing is
// validated at construction: the session keeps every observation,
// including corrections, and producers are responsible for constraining
// ratings to the canonical options.
type AuditResponse struct {
	Item      ChecklistItem
	Rating    Rating
	Comment   string
	PhotoRef  *string
	Context   *string
	Timestamp time.Time
}

func NewAuditResponse(item ChecklistItem, rating Rating, comment string, photoRef, context *string) AuditResponse {
	return AuditResponse{
		Item:      item,
		Rating:    rating,
		Comment:   comment,
		PhotoRef:  photoRef,
		Context:   context,
		Timestamp: time.Now().UTC(),
	}
}

// ResponseKey identifies the log position a response answers. Context
// is empty for general-section responses.
type ResponseKey struct {
	Section string
	Item    string
	Context string
}

func (r AuditResponse) Key() ResponseKey {
	k := ResponseKey{Section: r.Item.Section, Item: r.Item.Item}
	if r.Context != nil {
		k.Context = *r.Context
	}
	return k
}

func (r AuditResponse) HasPhoto() bool { return r.PhotoRef != nil && *r.PhotoRef != "" }
