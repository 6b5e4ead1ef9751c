package export

import (
	"fmt"
	"io"

	"gitee.com/gooffice/gooffice/measurement"
	"gitee.com/gooffice/gooffice/spreadsheet"

	"hotel_audit/internal/domain"
)

const sheetName = "Audit Results"

// BuildWorkbook renders the session as a single worksheet. Headers are
// always written, so a session with no responses produces a valid
// headers-only file.
func BuildWorkbook(s *domain.AuditSession) *spreadsheet.Workbook {
	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	sheet.SetName(sheetName)

	headerFont := wb.StyleSheet.AddFont()
	headerFont.SetBold(true)
	headerStyle := wb.StyleSheet.AddCellStyle()
	headerStyle.SetFont(headerFont)

	header := sheet.AddRow()
	for _, h := range TableHeaders {
		cell := header.AddCell()
		cell.SetString(h)
		cell.SetStyle(headerStyle)
	}

	for _, cols := range TableRows(s) {
		row := sheet.AddRow()
		for _, v := range cols {
			row.AddCell().SetString(v)
		}
	}

	// comfortable widths for the free-text columns
	for i := range TableHeaders {
		var w measurement.Distance = 1.2 * measurement.Inch
		switch TableHeaders[i] {
		case "Item", "Rating", "Comment":
			w = 2.5 * measurement.Inch
		}
		sheet.Column(uint32(i + 1)).SetWidth(w)
	}
	return wb
}

// WriteWorkbook saves the tabular export and returns the path it wrote.
func WriteWorkbook(s *domain.AuditSession, path string) (string, error) {
	wb := BuildWorkbook(s)
	if err := wb.SaveToFile(path); err != nil {
		return "", fmt.Errorf("save workbook %s: %w", path, err)
	}
	return path, nil
}

// StreamWorkbook writes the tabular export to w, for direct download.
func StreamWorkbook(s *domain.AuditSession, w io.Writer) error {
	wb := BuildWorkbook(s)
	return wb.Save(w)
}
