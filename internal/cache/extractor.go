package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/Divas-Gupta30/text-extractor/internal/ingestion"
	"github.com/Divas-Gupta30/text-extractor/internal/metrics"
)

// Store is the subset of Redis used by the caching extractor.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type cachingExtractor struct {
	next  ingestion.Extractor
	store Store
	ttl   time.Duration
}

// Wrap returns an extractor that serves repeated uploads of identical bytes
// and MIME type from store. Only successful extractions are stored, and store
// failures never fail the extraction.
func Wrap(next ingestion.Extractor, store Store, ttl time.Duration) ingestion.Extractor {
	return &cachingExtractor{next: next, store: store, ttl: ttl}
}

func (c *cachingExtractor) Extract(ctx context.Context, u ingestion.Upload) (string, error) {
	if ingestion.Classify(u.MIMEType) == ingestion.KindUnsupported {
		return c.next.Extract(ctx, u)
	}

	key, err := Key(u)
	if err != nil {
		return "", err
	}

	text, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		metrics.CacheHit()
		return text, nil
	case errors.Is(err, ErrMiss):
		metrics.CacheMiss()
	default:
		metrics.CacheError()
		log.Printf("Warning: cache read failed: %v", err)
	}

	text, err = c.next.Extract(ctx, u)
	if err != nil {
		return "", err
	}
	if err := c.store.Set(ctx, key, text, c.ttl); err != nil {
		metrics.CacheError()
		log.Printf("Warning: failed to cache extracted text: %v", err)
	}
	return text, nil
}

// Key derives the cache key from the upload's bytes and declared MIME type.
func Key(u ingestion.Upload) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, io.NewSectionReader(u.Content, 0, u.Size)); err != nil {
		return "", fmt.Errorf("hash upload: %w", err)
	}
	return fmt.Sprintf("extract:%s:%s", hex.EncodeToString(h.Sum(nil)), u.MIMEType), nil
}
