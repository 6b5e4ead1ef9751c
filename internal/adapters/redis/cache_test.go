package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "hotel_audit/internal/adapters/redis"
	"hotel_audit/internal/domain"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	sum := domain.SessionSummary{SessionID: "Grand_20250101_120000", Auditor: "Lina", ResponseCount: 3}
	if err := cache.Set(ctx, "session:summary", sum, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	// entries live under the module namespace
	if !mr.Exists("hotel_audit:session:summary") {
		t.Fatalf("expected namespaced key, have %v", mr.Keys())
	}

	var got domain.SessionSummary
	ok, err := cache.Get(ctx, "session:summary", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.SessionID != sum.SessionID || got.ResponseCount != 3 {
		t.Fatalf("unexpected summary: %+v", got)
	}

	if err := cache.Del(ctx, "session:summary"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = cache.Get(ctx, "session:summary", &got)
	if err != nil {
		t.Fatalf("get after del: %v", err)
	}
	if ok {
		t.Fatal("expected miss after del")
	}
}

func TestCacheEntriesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := cache.Set(ctx, "session:summary", domain.SessionSummary{SessionID: "x"}, 30*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(time.Minute)

	var got domain.SessionSummary
	ok, err := cache.Get(ctx, "session:summary", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected entry to expire")
	}
}
