package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	r, err := NewRedis(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), 0)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRedisSetGet(t *testing.T) {
	r := newTestRedis(t)
	ctx := context.Background()
	key := fmt.Sprintf("extract:test:%d", time.Now().UnixNano())

	if _, err := r.Get(ctx, key); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss before set, got %v", err)
	}
	if err := r.Set(ctx, key, "Hello World", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := r.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "Hello World" {
		t.Fatalf("unexpected value %q", got)
	}
	if err := r.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
}

func TestNewRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := NewRedis(ctx, "127.0.0.1:1", "", 0); err == nil {
		t.Fatal("expected error for unreachable redis")
	}
}
