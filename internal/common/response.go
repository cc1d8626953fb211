package common

import (
	"encoding/json"
	"net/http"
)

// ErrorBody represents the error payload returned by the API. The shape is
// part of the external contract consumed by the checkout client.
type ErrorBody struct {
	Message string `json:"message"`
}

// JSON writes the provided value to the response writer as JSON.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError renders an error response using the canonical error shape.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]any{
		"error": ErrorBody{Message: message},
	})
}
