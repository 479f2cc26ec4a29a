package response

import (
	"encoding/json"
	"net/http"
)

// The demo server speaks the same dialect as the real backend: payloads are
// written raw and errors carry a "detail" field, so clients cannot tell the
// two apart.

// errorBody is the error payload shape of the backend contract.
type errorBody struct {
	Detail string `json:"detail"`
}

// JSON writes data as-is with the given status
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error writes an error payload with the given status
func Error(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Detail: detail})
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// NoContent sends a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, detail string) {
	Error(w, http.StatusBadRequest, detail)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, detail string) {
	Error(w, http.StatusNotFound, detail)
}

// InternalError sends a 500 Internal Server Error response
func InternalError(w http.ResponseWriter, detail string) {
	Error(w, http.StatusInternalServerError, detail)
}
