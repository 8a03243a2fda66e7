package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/segmentio/kafka-go"
)

// Check - проверка одной зависимости воркера
type Check func(ctx context.Context) error

type HealthCheckHandler struct {
	checks        map[string]Check
	consumerStats func() kafka.ReaderStats
}

func NewHealthCheckHandler(checks map[string]Check, consumerStats func() kafka.ReaderStats) *HealthCheckHandler {
	return &HealthCheckHandler{
		checks:        checks,
		consumerStats: consumerStats,
	}
}

type ConsumerStatus struct {
	Topic    string `json:"topic"`
	Lag      int64  `json:"lag"`
	Messages int64  `json:"messages"`
	Errors   int64  `json:"errors"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Consumer  *ConsumerStatus   `json:"consumer,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func (h *HealthCheckHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks, healthy := h.runChecks(ctx)

	response := HealthResponse{
		Status:    "healthy",
		Checks:    checks,
		Timestamp: time.Now(),
	}
	if !healthy {
		response.Status = "unhealthy"
	}

	// Счетчики kafka-go сбрасываются при каждом вызове Stats
	if h.consumerStats != nil {
		stats := h.consumerStats()
		response.Consumer = &ConsumerStatus{
			Topic:    stats.Topic,
			Lag:      stats.Lag,
			Messages: stats.Messages,
			Errors:   stats.Errors,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	_ = json.NewEncoder(w).Encode(response)
}

func (h *HealthCheckHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, healthy := h.runChecks(ctx); !healthy {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (h *HealthCheckHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}

func (h *HealthCheckHandler) runChecks(ctx context.Context) (map[string]string, bool) {
	results := make(map[string]string, len(h.checks))
	healthy := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			results[name] = "unhealthy: " + err.Error()
			healthy = false
			continue
		}
		results[name] = "healthy"
	}
	return results, healthy
}

func (h *HealthCheckHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/health/readiness", h.Readiness)
	mux.HandleFunc("/health/liveness", h.Liveness)
}
