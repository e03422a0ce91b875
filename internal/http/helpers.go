package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"nestegg/internal/core"
	"nestegg/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrData):
		status = http.StatusBadGateway
	}

	if status >= 500 {
		slog.ErrorContext(r.Context(), "Request failed", "error", err, "url", r.URL.Path)
	} else {
		slog.WarnContext(r.Context(), "Request rejected", "error", err, "status", status, "url", r.URL.Path)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	slog.WarnContext(r.Context(), "Bad request", "reason", msg, "url", r.URL.Path)
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
