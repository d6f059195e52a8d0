package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger проверяет доступность базы данных
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	base
	db      Pinger
	version string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, db Pinger, version string) *HealthHandler {
	return &HealthHandler{
		base:    base{logger: logger},
		db:      db,
		version: version,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  string `json:"version,omitempty"`
	Success  bool   `json:"success"`
}

// Health обрабатывает GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Database: "ok", Version: h.version, Success: true}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.ErrorContext(ctx, "database ping failed", slog.Any("error", err))
		resp = HealthResponse{Status: "degraded", Database: "unavailable", Version: h.version}
		status = http.StatusServiceUnavailable
	}

	h.sendJSON(w, resp, status)
}
