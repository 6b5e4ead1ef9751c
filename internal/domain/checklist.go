package domain

// DefaultItemNote is the hint attached to a checklist item when the
// catalog does not carry one of its own.
const DefaultItemNote = "Provide observation or reason"

// ChecklistItem identifies one auditable question within a section.
// Value type; identity is (Section, Item).
type ChecklistItem struct {
	Section string
	Item    string
	Note    string
}

func NewChecklistItem(section, item string) ChecklistItem {
	return ChecklistItem{Section: section, Item: item, Note: DefaultItemNote}
}
