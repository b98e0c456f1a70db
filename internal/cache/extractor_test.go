package cache

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Divas-Gupta30/text-extractor/internal/ingestion"
)

type memStore struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	setCall int
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrMiss
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCall++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

type countingExtractor struct {
	calls int
	text  string
	err   error
}

func (c *countingExtractor) Extract(context.Context, ingestion.Upload) (string, error) {
	c.calls++
	return c.text, c.err
}

func newUpload(mime, body string) ingestion.Upload {
	return ingestion.Upload{Filename: "f", MIMEType: mime, Size: int64(len(body)), Content: strings.NewReader(body)}
}

func TestWrapServesRepeatFromCache(t *testing.T) {
	next := &countingExtractor{text: "Hello World"}
	store := newMemStore()
	ex := Wrap(next, store, time.Minute)

	for i := 0; i < 2; i++ {
		text, err := ex.Extract(context.Background(), newUpload("application/pdf", "%PDF-same"))
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if text != "Hello World" {
			t.Fatalf("unexpected text %q", text)
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected 1 backend call, got %d", next.calls)
	}
	for key, ttl := range store.ttls {
		if ttl != time.Minute {
			t.Fatalf("key %s stored with ttl %v", key, ttl)
		}
	}
}

func TestWrapKeysOnMIMEType(t *testing.T) {
	next := &countingExtractor{text: "x"}
	ex := Wrap(next, newMemStore(), time.Minute)

	ex.Extract(context.Background(), newUpload("image/png", "bytes"))
	ex.Extract(context.Background(), newUpload("image/jpeg", "bytes"))
	if next.calls != 2 {
		t.Fatalf("expected distinct entries per MIME type, got %d calls", next.calls)
	}
}

func TestWrapDoesNotCacheFailures(t *testing.T) {
	boom := errors.New("malformed pdf: bad xref")
	next := &countingExtractor{err: boom}
	store := newMemStore()
	ex := Wrap(next, store, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := ex.Extract(context.Background(), newUpload("application/pdf", "junk")); !errors.Is(err, boom) {
			t.Fatalf("expected backend error, got %v", err)
		}
	}
	if next.calls != 2 || store.setCall != 0 {
		t.Fatalf("calls=%d sets=%d", next.calls, store.setCall)
	}
}

func TestWrapSurvivesStoreErrors(t *testing.T) {
	next := &countingExtractor{text: "INVOICE"}
	store := newMemStore()
	store.getErr = errors.New("connection refused")
	store.setErr = errors.New("connection refused")
	ex := Wrap(next, store, time.Minute)

	text, err := ex.Extract(context.Background(), newUpload("image/png", "png"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "INVOICE" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestWrapPassesUnsupportedThrough(t *testing.T) {
	next := &countingExtractor{err: ingestion.ErrUnsupportedType}
	store := newMemStore()
	ex := Wrap(next, store, time.Minute)

	if _, err := ex.Extract(context.Background(), newUpload("text/plain", "hi")); !errors.Is(err, ingestion.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	if len(store.data) != 0 {
		t.Fatalf("unsupported upload touched the cache")
	}
}

func TestKeyIsContentAddressed(t *testing.T) {
	a, err := Key(ingestion.Upload{MIMEType: "image/png", Size: 3, Content: bytes.NewReader([]byte("abc"))})
	if err != nil {
		t.Fatalf("Key() error = %v", err)
	}
	b, _ := Key(ingestion.Upload{MIMEType: "image/png", Size: 3, Content: bytes.NewReader([]byte("abc"))})
	c, _ := Key(ingestion.Upload{MIMEType: "image/png", Size: 3, Content: bytes.NewReader([]byte("abd"))})

	if a != b {
		t.Fatalf("same content produced different keys: %s vs %s", a, b)
	}
	if a == c {
		t.Fatalf("different content produced the same key")
	}
	if !strings.HasPrefix(a, "extract:") || !strings.HasSuffix(a, ":image/png") {
		t.Fatalf("unexpected key format %s", a)
	}
}
