package fsstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"hotel_audit/internal/domain"
)

// Store persists session snapshots and uploaded photos on local disk.
// Writes are synchronous and best-effort: a failed write is terminal
// for that attempt and safely retryable.
type Store struct {
	auditsDir string
	photosDir string
}

func New(auditsDir, photosDir string) (*Store, error) {
	for _, dir := range []string{auditsDir, photosDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return &Store{auditsDir: auditsDir, photosDir: photosDir}, nil
}

func (s *Store) AuditsDir() string { return s.auditsDir }

// SnapshotPath is where the snapshot for a session id lives.
func (s *Store) SnapshotPath(sessionID string) string {
	return filepath.Join(s.auditsDir, sessionID+".json")
}

// SaveSnapshot writes the snapshot JSON and returns its path. On
// failure the path is not returned; callers branch on the error
// instead of probing the filesystem.
func (s *Store) SaveSnapshot(_ context.Context, sn domain.SessionSnapshot) (string, error) {
	b, err := json.MarshalIndent(sn, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot %s: %w", sn.SessionID, err)
	}
	path := s.SnapshotPath(sn.SessionID)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return path, nil
}

func (s *Store) LoadSnapshot(_ context.Context, path string) (domain.SessionSnapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.SessionSnapshot{}, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	var sn domain.SessionSnapshot
	if err := json.Unmarshal(b, &sn); err != nil {
		return domain.SessionSnapshot{}, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return sn, nil
}

// ListSnapshots returns the paths of every saved snapshot, sorted.
func (s *Store) ListSnapshots(_ context.Context) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.auditsDir, "*.json"))
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// SavePhoto stores photo bytes under a collision-free name and returns
// the path used as the opaque reference on responses.
func (s *Store) SavePhoto(_ context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(s.photosDir, uuid.NewString()+"_"+filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write photo %s: %w", path, err)
	}
	return path, nil
}
