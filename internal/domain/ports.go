package domain

import (
	"context"
	"time"
)

// SnapshotStore persists and recovers session snapshots.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, sn SessionSnapshot) (string, error)
	LoadSnapshot(ctx context.Context, path string) (SessionSnapshot, error)
	ListSnapshots(ctx context.Context) ([]string, error)
}

// PhotoStore keeps uploaded photo bytes and hands back an opaque
// reference. The core never reads the bytes again.
type PhotoStore interface {
	SavePhoto(ctx context.Context, name string, data []byte) (string, error)
}

// Cache backs the read models derived from the active session. Get
// reports whether the key was present; a miss is not an error.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}
