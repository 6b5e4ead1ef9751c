package export_test

import (
	"reflect"
	"testing"

	"hotel_audit/internal/domain"
	"hotel_audit/internal/export"
)

func ptr[T any](v T) *T { return &v }

func session(t *testing.T) *domain.AuditSession {
	t.Helper()
	s, err := domain.NewAuditSession(domain.HotelInfo{Name: "Grand Palace"}, "Lina")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestTableRowsSingleResponse(t *testing.T) {
	s := session(t)
	r := domain.NewAuditResponse(
		domain.NewChecklistItem("Main Lobby", "Flooring condition"),
		domain.ParseRating("2 - Needs to be changed to match competing hotels"),
		"Worn carpet", nil, nil,
	)
	s.AddResponse(r)

	rows := export.TableRows(s)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	want := []string{
		"Main Lobby",
		"Flooring condition",
		"2 - Needs to be changed to match competing hotels",
		"Worn carpet",
		"General",
		"No",
		r.Timestamp.Format("2006-01-02 15:04"),
	}
	if !reflect.DeepEqual(rows[0], want) {
		t.Fatalf("row mismatch:\ngot  %v\nwant %v", rows[0], want)
	}
}

func TestTableRowsContextAndPhoto(t *testing.T) {
	s := session(t)
	s.AddResponse(domain.NewAuditResponse(
		domain.NewChecklistItem("F&B Outlets", "Seating comfort"),
		domain.ParseRating("1 - Needs to be changed due to age-related factors"),
		"", ptr("photos/x.jpg"), ptr("Lobby Bar"),
	))
	rows := export.TableRows(s)
	if rows[0][4] != "Lobby Bar" || rows[0][5] != "Yes" {
		t.Fatalf("context/photo columns wrong: %v", rows[0])
	}
}

func TestTableRowsUnknownRatingPassesThrough(t *testing.T) {
	s := session(t)
	s.AddResponse(domain.NewAuditResponse(
		domain.NewChecklistItem("Main Lobby", "x"),
		domain.ParseRating("9 - from an older form version"), "", nil, nil,
	))
	if got := export.TableRows(s)[0][2]; got != "9 - from an older form version" {
		t.Fatalf("raw rating must pass through, got %q", got)
	}
}

// A stored rating sharing a canonical numeric prefix renders as the
// full canonical option, while the session keeps the original string.
func TestRatingResolvedAtRenderNotAtStorage(t *testing.T) {
	s := session(t)
	stored := "2 - custom wording from an older form"
	s.AddResponse(domain.NewAuditResponse(
		domain.NewChecklistItem("Main Lobby", "Flooring condition"),
		domain.ParseRating(stored), "Worn carpet", nil, nil,
	))

	if got := export.TableRows(s)[0][2]; got != "2 - Needs to be changed to match competing hotels" {
		t.Fatalf("table must resolve by prefix, got %q", got)
	}
	lines := export.FindingLines(1, s.Responses()[0])
	if lines[1] != "Rating: Needs to be changed to match competing hotels" {
		t.Fatalf("report must resolve by prefix, got %q", lines[1])
	}
	if got := s.Responses()[0].Rating.String(); got != stored {
		t.Fatalf("storage must stay lossless, got %q", got)
	}
	if got := s.Snapshot().Responses[0].Rating.String(); got != stored {
		t.Fatalf("snapshot must stay lossless, got %q", got)
	}
}

func TestTableRowsInsertionOrderAndIdempotence(t *testing.T) {
	s := session(t)
	s.AddResponse(domain.NewAuditResponse(domain.NewChecklistItem("Guestroom", "b"), domain.ParseRating("4"), "", nil, ptr("Deluxe")))
	s.AddResponse(domain.NewAuditResponse(domain.NewChecklistItem("Main Lobby", "a"), domain.ParseRating("3"), "", nil, nil))
	s.AddResponse(domain.NewAuditResponse(domain.NewChecklistItem("Guestroom", "b"), domain.ParseRating("4"), "", nil, ptr("Deluxe")))

	first := export.TableRows(s)
	if first[0][0] != "Guestroom" || first[1][0] != "Main Lobby" || first[2][0] != "Guestroom" {
		t.Fatalf("rows must stay in insertion order, not grouped: %v", first)
	}
	second := export.TableRows(s)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("unchanged session must export identical rows")
	}
}

func TestTableRowsEmptySession(t *testing.T) {
	if rows := export.TableRows(session(t)); len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
	if len(export.TableHeaders) != 7 {
		t.Fatalf("header count: %d", len(export.TableHeaders))
	}
}

func TestHotelInfoLinesNA(t *testing.T) {
	lines := export.HotelInfoLines(domain.HotelInfo{Name: "Grand Palace"})
	want := []string{
		"Hotel Name: Grand Palace",
		"Location: N/A, N/A",
		"Year Opened: N/A",
		"Floors: N/A",
		"Total Rooms: N/A",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines:\ngot  %v\nwant %v", lines, want)
	}
}

func TestHotelInfoLinesFull(t *testing.T) {
	lines := export.HotelInfoLines(domain.HotelInfo{
		Name: "Grand Palace", City: "Vienna", Country: "Austria",
		YearOpened: 1898, Floors: 7, TotalRooms: 212,
	})
	if lines[1] != "Location: Vienna, Austria" || lines[2] != "Year Opened: 1898" {
		t.Fatalf("lines: %v", lines)
	}
}

func TestFindingLines(t *testing.T) {
	r := domain.NewAuditResponse(
		domain.NewChecklistItem("Main Lobby", "Flooring condition"),
		domain.ParseRating("2 - Needs to be changed to match competing hotels"),
		"Worn carpet", nil, nil,
	)
	lines := export.FindingLines(1, r)
	want := []string{
		"1. Item: Flooring condition",
		"Rating: Needs to be changed to match competing hotels",
		"Comment: Worn carpet",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("finding:\ngot  %v\nwant %v", lines, want)
	}
}

func TestFindingLinesContextSuffixAndPhoto(t *testing.T) {
	r := domain.NewAuditResponse(
		domain.NewChecklistItem("F&B Outlets", "Seating comfort"),
		domain.ParseRating("1"), "", ptr("photos/x.jpg"), ptr("Lobby Bar"),
	)
	lines := export.FindingLines(3, r)
	if lines[0] != "3. Item: Seating comfort (Lobby Bar)" {
		t.Fatalf("context suffix: %q", lines[0])
	}
	if lines[len(lines)-1] != "Photo: attached" {
		t.Fatalf("photo presence line missing: %v", lines)
	}
}

func TestBuildWorkbookAndReport(t *testing.T) {
	s := session(t)
	s.AddResponse(domain.NewAuditResponse(domain.NewChecklistItem("Main Lobby", "Flooring condition"),
		domain.ParseRating("2"), "Worn carpet", nil, nil))

	if wb := export.BuildWorkbook(s); wb == nil {
		t.Fatal("nil workbook")
	}
	if doc := export.BuildReport(s); doc == nil {
		t.Fatal("nil document")
	}
}
