package export

import (
	"fmt"
	"io"

	"gitee.com/gooffice/gooffice/document"
	"gitee.com/gooffice/gooffice/measurement"
	"gitee.com/gooffice/gooffice/schema/soo/wml"

	"hotel_audit/internal/domain"
)

const reportTitle = "Hotel Audit Report"

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func intOrNA(n int) string {
	if n == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", n)
}

// HotelInfoLines renders the hotel information block. Every field is
// present, with a literal N/A placeholder when the value is absent.
func HotelInfoLines(info domain.HotelInfo) []string {
	return []string{
		"Hotel Name: " + orNA(info.Name),
		fmt.Sprintf("Location: %s, %s", orNA(info.City), orNA(info.Country)),
		"Year Opened: " + intOrNA(info.YearOpened),
		"Floors: " + intOrNA(info.Floors),
		"Total Rooms: " + intOrNA(info.TotalRooms),
	}
}

// FindingLines renders one numbered finding. Photos are referenced by
// presence only and never embedded.
func FindingLines(idx int, r domain.AuditResponse) []string {
	item := r.Item.Item
	if r.Context != nil && *r.Context != "" {
		item = fmt.Sprintf("%s (%s)", item, *r.Context)
	}
	lines := []string{
		fmt.Sprintf("%d. Item: %s", idx, item),
		"Rating: " + renderRating(r.Rating).Description(),
		"Comment: " + r.Comment,
	}
	if r.HasPhoto() {
		lines = append(lines, "Photo: attached")
	}
	return lines
}

func addHeading(doc *document.Document, text string, level int, size measurement.Distance) {
	para := doc.AddParagraph()
	para.SetOutlineLvl(int64(level))
	para.Properties().SetHeadingLevel(level)
	run := para.AddRun()
	run.Properties().SetSize(size)
	run.Properties().SetBold(true)
	run.AddText(text)
}

func addText(doc *document.Document, text string, size measurement.Distance, center bool) {
	para := doc.AddParagraph()
	if center {
		para.Properties().SetAlignment(wml.ST_JcCenter)
	}
	run := para.AddRun()
	run.Properties().SetSize(size)
	run.AddText(text)
}

// BuildReport renders the paginated report: title, hotel information,
// auditor/date, then one findings subsection per section in first-seen
// order with responses numbered in insertion order.
func BuildReport(s *domain.AuditSession) *document.Document {
	doc := document.New()

	addText(doc, reportTitle, 16, true)

	addHeading(doc, "Hotel Information", 1, 13)
	for _, line := range HotelInfoLines(s.HotelInfo) {
		addText(doc, line, 11, false)
	}

	addText(doc, "Auditor: "+s.AuditorName, 11, false)
	addText(doc, "Date: "+s.Timestamp.Format(timestampLayout), 11, false)

	addHeading(doc, "Audit Findings", 1, 13)
	for _, group := range s.ResponsesBySection() {
		addHeading(doc, "Section: "+group.Section, 2, 12)
		for i, r := range group.Responses {
			for _, line := range FindingLines(i+1, r) {
				addText(doc, line, 10, false)
			}
		}
	}
	return doc
}

// WriteReport saves the report and returns the path it wrote.
func WriteReport(s *domain.AuditSession, path string) (string, error) {
	doc := BuildReport(s)
	if err := doc.SaveToFile(path); err != nil {
		return "", fmt.Errorf("save report %s: %w", path, err)
	}
	return path, nil
}

// StreamReport writes the report to w, for direct download.
func StreamReport(s *domain.AuditSession, w io.Writer) error {
	doc := BuildReport(s)
	return doc.Save(w)
}
