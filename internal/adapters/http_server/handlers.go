package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"hotel_audit/internal/app"
	"hotel_audit/internal/domain"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	maxPhotoBytes = 10 << 20
)

type Handlers struct {
	Audit     *app.AuditService
	Q         *app.QueryService
	Export    *app.ExportService
	UploadRPS int
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/catalog", h.getCatalog)
	s.mux.Post("/v1/sessions", h.startSession)
	s.mux.Get("/v1/session", h.getSummary)
	s.mux.Get("/v1/session/responses", h.listResponses)
	s.mux.Post("/v1/session/responses", h.recordResponse)
	s.mux.Delete("/v1/session/responses", h.clearResponses)
	s.mux.With(RateLimit(h.UploadRPS)).Post("/v1/session/photos", h.uploadPhoto)
	s.mux.Post("/v1/session/snapshot", h.saveSnapshot)
	s.mux.Get("/v1/session/export/excel", h.exportExcel)
	s.mux.Get("/v1/session/export/report", h.exportReport)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// noSession maps the missing-session condition to a 409.
func noSession(w http.ResponseWriter, err error) bool {
	if errors.Is(err, app.ErrNoSession) {
		writeProblem(w, http.StatusConflict, "No Active Session", "start an audit session first")
		return true
	}
	return false
}

func (h *Handlers) getCatalog(w http.ResponseWriter, r *http.Request) {
	cat := h.Audit.Catalog()
	out := make([]map[string]any, 0)
	for _, sec := range cat.Sections() {
		out = append(out, map[string]any{"section": sec, "items": cat.Items(sec)})
	}
	writeJSON(w, http.StatusOK, out)
}

type startSessionRequest struct {
	HotelInfo   domain.HotelInfo `json:"hotel_info"`
	AuditorName string           `json:"auditor_name"`
}

func (h *Handlers) startSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	sum, err := h.Audit.Start(r.Context(), req.HotelInfo, req.AuditorName)
	if err != nil {
		if errors.Is(err, domain.ErrMissingIdentity) {
			writeProblem(w, http.StatusBadRequest, "Missing Fields", "Hotel Name and Auditor Name are required fields")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Start Failed", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, sum)
}

func (h *Handlers) getSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Q.Summary(r.Context())
	if err != nil {
		if !noSession(w, err) {
			writeProblem(w, http.StatusInternalServerError, "Summary Failed", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// keyFromQuery builds the (section, item, context) key; context is
// optional and empty means a general-section response.
func keyFromQuery(r *http.Request) (domain.ResponseKey, bool) {
	q := r.URL.Query()
	key := domain.ResponseKey{
		Section: q.Get("section"),
		Item:    q.Get("item"),
		Context: q.Get("context"),
	}
	return key, key.Section != "" && key.Item != ""
}

func (h *Handlers) listResponses(w http.ResponseWriter, r *http.Request) {
	if key, ok := keyFromQuery(r); ok {
		if r.URL.Query().Get("latest") == "true" {
			resp, found, err := h.Q.Latest(key)
			if err != nil {
				noSession(w, err)
				return
			}
			if !found {
				writeProblem(w, http.StatusNotFound, "Not Found", "no response recorded for this item")
				return
			}
			writeJSON(w, http.StatusOK, responseView(resp))
			return
		}
		all, err := h.Q.ForKey(key)
		if err != nil {
			noSession(w, err)
			return
		}
		views := make([]any, 0, len(all))
		for _, resp := range all {
			views = append(views, responseView(resp))
		}
		writeJSON(w, http.StatusOK, views)
		return
	}

	groups, err := h.Q.Sections(r.Context())
	if err != nil {
		noSession(w, err)
		return
	}
	out := make([]map[string]any, 0, len(groups))
	for _, g := range groups {
		views := make([]any, 0, len(g.Responses))
		for _, resp := range g.Responses {
			views = append(views, responseView(resp))
		}
		out = append(out, map[string]any{"section": g.Section, "responses": views})
	}
	writeJSON(w, http.StatusOK, out)
}

type recordRequest struct {
	Section  string  `json:"section"`
	Item     string  `json:"item"`
	Rating   string  `json:"rating"`
	Comment  string  `json:"comment"`
	PhotoRef *string `json:"photo_ref"`
	Context  *string `json:"context"`
}

func (h *Handlers) recordResponse(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "malformed JSON")
		return
	}
	if req.Section == "" || req.Item == "" {
		writeProblem(w, http.StatusBadRequest, "Missing Fields", "section and item are required")
		return
	}
	resp, err := h.Audit.Record(r.Context(), app.RecordRequest{
		Section:  req.Section,
		Item:     req.Item,
		Rating:   req.Rating,
		Comment:  req.Comment,
		PhotoRef: req.PhotoRef,
		Context:  req.Context,
	})
	if err != nil {
		noSession(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, responseView(resp))
}

func (h *Handlers) clearResponses(w http.ResponseWriter, r *http.Request) {
	key, ok := keyFromQuery(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Missing Fields", "section and item query parameters are required")
		return
	}
	removed, err := h.Audit.Clear(r.Context(), key)
	if err != nil {
		noSession(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

func (h *Handlers) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Upload", "expected multipart form with a photo field")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Upload", "photo field is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Upload", "could not read photo bytes")
		return
	}
	ref, err := h.Audit.SavePhoto(r.Context(), header.Filename, data)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Photo Save Failed", "photo could not be stored")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"photo_ref": ref})
}

func (h *Handlers) saveSnapshot(w http.ResponseWriter, r *http.Request) {
	path, err := h.Audit.SaveSnapshot(r.Context())
	if err != nil {
		if !noSession(w, err) {
			writeProblem(w, http.StatusInternalServerError, "Snapshot Failed", "session data could not be saved")
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"path": path})
}

func (h *Handlers) exportExcel(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Audit.Current()
	if !ok {
		noSession(w, app.ErrNoSession)
		return
	}
	path, err := h.Export.ExportExcel(sess)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Export Failed", "excel export could not be written")
		return
	}
	serveArtifact(w, r, path, contentTypeXLSX, "hotel_audit_"+sess.SessionID+".xlsx")
}

func (h *Handlers) exportReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.Audit.Current()
	if !ok {
		noSession(w, app.ErrNoSession)
		return
	}
	path, err := h.Export.ExportReport(sess)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Export Failed", "report export could not be written")
		return
	}
	serveArtifact(w, r, path, contentTypeDOCX, "Hotel_Audit_"+sess.SessionID+".docx")
}

func serveArtifact(w http.ResponseWriter, r *http.Request, path, contentType, downloadName string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+downloadName+`"`)
	http.ServeFile(w, r, path)
}

// responseView is the wire form of one response, aligned with the
// snapshot field names.
func responseView(r domain.AuditResponse) map[string]any {
	return map[string]any{
		"context":    r.Context,
		"section":    r.Item.Section,
		"item":       r.Item.Item,
		"note":       r.Item.Note,
		"rating":     r.Rating.String(),
		"comment":    r.Comment,
		"photo_file": r.PhotoRef,
		"timestamp":  r.Timestamp,
	}
}
