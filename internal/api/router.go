package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the API, metrics, and the client page served by page.
func NewRouter(h *Handler, page http.Handler) *mux.Router {
	router := mux.NewRouter()

	// Method checks happen in the handler so that every rejection is JSON.
	router.HandleFunc("/api/extract-text", h.ExtractText)
	router.HandleFunc("/health", h.Health).Methods("GET")

	// Metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	router.PathPrefix("/").Handler(page)
	return router
}
