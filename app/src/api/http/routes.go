package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"atm-service/app/src/domain"
	"atm-service/app/src/infra"
)

// handler contains the HTTP handlers and shared dependencies for the
// status API.
type handler struct {
	status        domain.StatusSource
	aircraftCount int
	logger        *infra.Logger
	started       time.Time
}

func registerRoutes(router *chi.Mux, h *handler) {
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if h.logger != nil {
			h.logger.Println(r.Context(), "health check OK")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Get("/status", h.handleStatus)
}

type statusResponse struct {
	Aircraft      int     `json:"aircraft"`
	Processed     int     `json:"processed"`
	Rejected      int     `json:"rejected"`
	Terminated    int     `json:"terminated"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func (h *handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if h.status == nil {
		h.writeError(w, http.StatusServiceUnavailable, "status source not available")
		return
	}

	snap := h.status.Snapshot()
	h.writeJSON(w, http.StatusOK, statusResponse{
		Aircraft:      h.aircraftCount,
		Processed:     snap.Processed,
		Rejected:      snap.Rejected,
		Terminated:    snap.Terminated,
		UptimeSeconds: time.Since(h.started).Seconds(),
	})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Warnf(context.Background(), "failed to encode response: %v", err)
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message, Code: status})
}
