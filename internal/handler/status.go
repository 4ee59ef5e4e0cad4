package handler

import (
	"context"
	"net/http"
	"time"

	"projecthub/internal/httputil"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatusHandler reports service liveness and database reachability.
type StatusHandler struct {
	pool *pgxpool.Pool
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(pool *pgxpool.Pool) *StatusHandler {
	return &StatusHandler{pool: pool}
}

// Status reports service health
// GET /api/status
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := h.pool.Ping(ctx); err != nil {
		dbStatus = "unreachable"
	}

	status := http.StatusOK
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	httputil.RespondData(w, status, map[string]string{
		"service":  "ok",
		"database": dbStatus,
	})
}
