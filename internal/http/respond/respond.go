package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// All success payloads ride in a {"data": ...} envelope; errors in
// {"error": ...}.

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Data(w http.ResponseWriter, status int, v any) {
	JSON(w, status, map[string]any{"data": v})
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]any{"error": msg})
}

// NotFound is the single response for both absent and not-owned records, so
// existence never leaks across owners.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "not found")
}

func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "internal error")
}
