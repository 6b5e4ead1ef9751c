package export

import (
	"hotel_audit/internal/domain"
)

const timestampLayout = "2006-01-02 15:04"

// TableHeaders is the fixed column set of the tabular export.
var TableHeaders = []string{"Section", "Item", "Rating", "Comment", "Context", "Photo", "Timestamp"}

// renderRating resolves the displayed rating at render time: canonical
// ratings as-is, unknown strings upgraded to the canonical option with
// the same numeric prefix when one exists, verbatim otherwise. The
// stored value is never touched.
func renderRating(r domain.Rating) domain.Rating {
	if r.Known() {
		return r
	}
	if c, ok := domain.ResolveByPrefix(r.String()); ok {
		return c
	}
	return r
}

// TableRows flattens the session history into worksheet rows, one row
// per response in insertion order (not grouped). The photo payload is
// never embedded, only its presence.
func TableRows(s *domain.AuditSession) [][]string {
	responses := s.Responses()
	rows := make([][]string, 0, len(responses))
	for _, r := range responses {
		ctx := "General"
		if r.Context != nil && *r.Context != "" {
			ctx = *r.Context
		}
		photo := "No"
		if r.HasPhoto() {
			photo = "Yes"
		}
		rows = append(rows, []string{
			r.Item.Section,
			r.Item.Item,
			renderRating(r.Rating).String(),
			r.Comment,
			ctx,
			photo,
			r.Timestamp.Format(timestampLayout),
		})
	}
	return rows
}
