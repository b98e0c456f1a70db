package api

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/Divas-Gupta30/text-extractor/internal/ingestion"
	"github.com/Divas-Gupta30/text-extractor/internal/metrics"
)

// Pinger reports the health of an optional dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures the extraction handler.
type Options struct {
	// MaxUploadBytes caps the whole request body.
	MaxUploadBytes int64
	// MaxMemoryBytes is how much of an upload is buffered in memory before the
	// multipart parser spills it to a temp file.
	MaxMemoryBytes int64
	AllowOrigin    string
	// Cache is reported by /health when set.
	Cache Pinger
}

// Handler serves the extraction API.
type Handler struct {
	extractor ingestion.Extractor
	opts      Options
}

func NewHandler(extractor ingestion.Extractor, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 25 << 20
	}
	if opts.MaxMemoryBytes <= 0 || opts.MaxMemoryBytes > opts.MaxUploadBytes {
		opts.MaxMemoryBytes = opts.MaxUploadBytes
	}
	if opts.AllowOrigin == "" {
		opts.AllowOrigin = "*"
	}
	return &Handler{extractor: extractor, opts: opts}
}

// ExtractText accepts one multipart file named "file" and returns its text.
func (h *Handler) ExtractText(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	w.Header().Set("Access-Control-Allow-Origin", h.opts.AllowOrigin)

	if r.Method == http.MethodOptions {
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if r.Method != http.MethodPost {
		h.reject(w, start, "none", http.StatusMethodNotAllowed, msgMethodNotAllowed)
		return
	}

	if r.ContentLength > h.opts.MaxUploadBytes {
		h.reject(w, start, "none", http.StatusRequestEntityTooLarge, msgTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.opts.MaxMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
			h.reject(w, start, "none", http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		h.reject(w, start, "none", http.StatusBadRequest, msgNoFile)
		return
	}
	// releases spilled temp files on every path below
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.reject(w, start, "none", http.StatusBadRequest, msgNoFile)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	kind := ingestion.Classify(mimeType)
	if kind == ingestion.KindUnsupported {
		h.reject(w, start, kind.String(), http.StatusBadRequest, msgUnsupportedType)
		return
	}
	metrics.ObserveUpload(header.Size)

	text, err := h.extractor.Extract(r.Context(), ingestion.Upload{
		Filename: header.Filename,
		MIMEType: mimeType,
		Size:     header.Size,
		Content:  file,
	})
	if err != nil {
		log.Printf("extract %s %q (%d bytes) failed: %v", kind, header.Filename, header.Size, err)
		metrics.ObserveRequest(kind.String(), strconv.Itoa(http.StatusInternalServerError), start)
		writeErrorResponse(w, http.StatusInternalServerError, msgProcessFailed, err.Error())
		return
	}

	log.Printf("extract %s %q (%d bytes): %d chars in %s", kind, header.Filename, header.Size, len(text), time.Since(start))
	metrics.ObserveRequest(kind.String(), strconv.Itoa(http.StatusOK), start)
	writeJSONResponse(w, http.StatusOK, ExtractResponse{Text: text})
}

func (h *Handler) reject(w http.ResponseWriter, start time.Time, kind string, status int, message string) {
	metrics.ObserveRequest(kind, strconv.Itoa(status), start)
	writeErrorResponse(w, status, message, "")
}

// Health reports service status and, when configured, cache connectivity.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := map[string]string{
		"status": "healthy",
		"cache":  "disabled",
	}
	if h.opts.Cache != nil {
		health["cache"] = "connected"
		if err := h.opts.Cache.Ping(r.Context()); err != nil {
			health["cache"] = "disconnected"
		}
	}
	writeJSONResponse(w, http.StatusOK, health)
}
