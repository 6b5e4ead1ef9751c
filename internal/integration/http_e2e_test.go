//go:build integration || !unit

package integration

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	server "hotel_audit/internal/adapters/http_server"
	redisad "hotel_audit/internal/adapters/redis"
	"hotel_audit/internal/app"
	"hotel_audit/internal/catalog"
	"hotel_audit/internal/storage/fsstore"
)

// ---------- helpers ----------

type stack struct {
	ts        *httptest.Server
	auditsDir string
}

func newStack(t *testing.T) *stack {
	t.Helper()
	dir := t.TempDir()
	auditsDir := filepath.Join(dir, "audits")

	store, err := fsstore.New(auditsDir, filepath.Join(dir, "photos"))
	if err != nil {
		t.Fatalf("fsstore: %v", err)
	}
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)

	cat := catalog.New(map[string][]string{
		"Main Lobby":  {"Flooring condition", "Lighting levels"},
		"F&B Outlets": {"Seating comfort"},
	})

	audit := app.NewAuditService(cat, store, store, cache)
	q := app.NewQueryService(audit, cache, 5*time.Minute)
	exp := app.NewExportService(auditsDir)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{Audit: audit, Q: q, Export: exp, UploadRPS: 100})

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return &stack{ts: ts, auditsDir: auditsDir}
}

func (s *stack) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, s.ts.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	return resp, buf.Bytes()
}

func startBody() map[string]any {
	return map[string]any{
		"hotel_info": map[string]any{
			"name":        "Grand Palace",
			"city":        "Vienna",
			"country":     "Austria",
			"fnb_outlets": []string{"Lobby Bar"},
		},
		"auditor_name": "Lina",
	}
}

func recordBody(rating string) map[string]any {
	return map[string]any{
		"section": "Main Lobby",
		"item":    "Flooring condition",
		"rating":  rating,
		"comment": "Worn carpet",
	}
}

// ---------- tests ----------

func TestStartSessionValidation(t *testing.T) {
	s := newStack(t)

	resp, _ := s.do(t, http.MethodPost, "/v1/sessions", map[string]any{
		"hotel_info": map[string]any{"name": ""}, "auditor_name": "Lina",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	resp, body := s.do(t, http.MethodPost, "/v1/sessions", startBody())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
	}
	var sum map[string]any
	if err := json.Unmarshal(body, &sum); err != nil {
		t.Fatal(err)
	}
	if id, _ := sum["session_id"].(string); id == "" {
		t.Fatalf("missing session id: %s", body)
	}
}

func TestNoSessionIsConflict(t *testing.T) {
	s := newStack(t)
	resp, _ := s.do(t, http.MethodGet, "/v1/session", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestRecordClearFlow(t *testing.T) {
	s := newStack(t)
	s.do(t, http.MethodPost, "/v1/sessions", startBody())

	for _, rating := range []string{
		"2 - Needs to be changed to match competing hotels",
		"4 - No action required",
	} {
		resp, body := s.do(t, http.MethodPost, "/v1/session/responses", recordBody(rating))
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("record: %d %s", resp.StatusCode, body)
		}
	}

	// latest-for-key picks the second response
	resp, body := s.do(t, http.MethodGet, "/v1/session/responses?section=Main+Lobby&item=Flooring+condition&latest=true", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("latest: %d", resp.StatusCode)
	}
	var latest map[string]any
	_ = json.Unmarshal(body, &latest)
	if latest["rating"] != "4 - No action required" {
		t.Fatalf("latest rating: %v", latest["rating"])
	}

	// history keeps both
	_, body = s.do(t, http.MethodGet, "/v1/session", nil)
	var sum struct {
		ResponseCount int `json:"responses_count"`
	}
	_ = json.Unmarshal(body, &sum)
	if sum.ResponseCount != 2 {
		t.Fatalf("responses_count: %d", sum.ResponseCount)
	}

	// clear removes the whole key
	resp, body = s.do(t, http.MethodDelete, "/v1/session/responses?section=Main+Lobby&item=Flooring+condition", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clear: %d", resp.StatusCode)
	}
	var cleared map[string]int
	_ = json.Unmarshal(body, &cleared)
	if cleared["removed"] != 2 {
		t.Fatalf("removed: %d", cleared["removed"])
	}
	_, body = s.do(t, http.MethodGet, "/v1/session", nil)
	_ = json.Unmarshal(body, &sum)
	if sum.ResponseCount != 0 {
		t.Fatalf("after clear responses_count: %d", sum.ResponseCount)
	}
}

func TestSnapshotAndExports(t *testing.T) {
	s := newStack(t)
	s.do(t, http.MethodPost, "/v1/sessions", startBody())
	s.do(t, http.MethodPost, "/v1/session/responses", recordBody("2 - Needs to be changed to match competing hotels"))

	resp, body := s.do(t, http.MethodPost, "/v1/session/snapshot", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("snapshot: %d %s", resp.StatusCode, body)
	}
	var out map[string]string
	_ = json.Unmarshal(body, &out)
	if _, err := os.Stat(out["path"]); err != nil {
		t.Fatalf("snapshot file missing: %v", err)
	}

	for _, kind := range []string{"excel", "report"} {
		resp, body := s.do(t, http.MethodGet, "/v1/session/export/"+kind, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s export: %d", kind, resp.StatusCode)
		}
		if len(body) == 0 {
			t.Fatalf("%s export: empty body", kind)
		}
	}
	// both artifacts land next to the snapshot
	ents, _ := os.ReadDir(s.auditsDir)
	if len(ents) != 3 {
		t.Fatalf("expected snapshot + 2 artifacts, got %d files", len(ents))
	}
}

func TestPhotoUpload(t *testing.T) {
	s := newStack(t)
	s.do(t, http.MethodPost, "/v1/sessions", startBody())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("photo", "front.jpg")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte("not really a jpeg"))
	_ = mw.Close()

	req, _ := http.NewRequest(http.MethodPost, s.ts.URL+"/v1/session/photos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload: %d", resp.StatusCode)
	}
	var out map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if out["photo_ref"] == "" {
		t.Fatal("missing photo_ref")
	}
	if _, err := os.Stat(out["photo_ref"]); err != nil {
		t.Fatalf("photo file missing: %v", err)
	}
}
