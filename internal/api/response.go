package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// ExtractResponse is the success body of the extraction endpoint.
type ExtractResponse struct {
	Text string `json:"text"`
}

// ErrorResponse is the failure body of every API endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

const (
	msgMethodNotAllowed = "Method not allowed"
	msgNoFile           = "No file uploaded"
	msgUnsupportedType  = "Unsupported file type"
	msgTooLarge         = "File too large"
	msgProcessFailed    = "Failed to process file"
)

func writeJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, message, details string) {
	writeJSONResponse(w, status, ErrorResponse{Error: message, Details: details})
}
