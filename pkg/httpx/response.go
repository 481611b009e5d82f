package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as a JSON response with the given status code.
// Responses are marked non-cacheable since most of them carry
// account or token material.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody is the uniform error envelope returned by every endpoint.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// WriteError writes a JSON error envelope with the given status code.
func WriteError(w http.ResponseWriter, code int, detail string) {
	WriteJSON(w, code, ErrorBody{Detail: detail})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
