package app

import (
	"path/filepath"

	"github.com/rs/zerolog/log"

	"hotel_audit/internal/adapters/observability"
	"hotel_audit/internal/domain"
	"hotel_audit/internal/export"
)

// ExportService writes both artifact kinds under the audits directory.
// Artifacts are generated on demand and never cached; re-running an
// export with an unchanged session is idempotent.
type ExportService struct {
	dir string
}

func NewExportService(dir string) *ExportService {
	return &ExportService{dir: dir}
}

func (e *ExportService) ExcelPath(sessionID string) string {
	return filepath.Join(e.dir, sessionID+".xlsx")
}

func (e *ExportService) ReportPath(sessionID string) string {
	return filepath.Join(e.dir, sessionID+".docx")
}

func (e *ExportService) ExportExcel(s *domain.AuditSession) (string, error) {
	path, err := export.WriteWorkbook(s, e.ExcelPath(s.SessionID))
	observability.ObserveExport("excel", err)
	if err != nil {
		log.Error().Err(err).Str("session", s.SessionID).Msg("excel export failed")
		return "", err
	}
	log.Info().Str("path", path).Msg("excel export written")
	return path, nil
}

func (e *ExportService) ExportReport(s *domain.AuditSession) (string, error) {
	path, err := export.WriteReport(s, e.ReportPath(s.SessionID))
	observability.ObserveExport("report", err)
	if err != nil {
		log.Error().Err(err).Str("session", s.SessionID).Msg("report export failed")
		return "", err
	}
	log.Info().Str("path", path).Msg("report export written")
	return path, nil
}
