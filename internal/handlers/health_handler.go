package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"go_flight_academy/internal/middleware"
	"go_flight_academy/internal/webutil"
)

// Pinger は DB 接続確認のためのインターフェース (*sql.DB が満たす)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db           Pinger
	articleCount int
	logger       *slog.Logger
}

func NewHealthHandler(db Pinger, articleCount int, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{db: db, articleCount: articleCount, logger: logger}
}

type healthResponse struct {
	Status   string `json:"status"`
	Articles int    `json:"articles"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerOr(r.Context(), h.logger)
	if err := h.db.PingContext(r.Context()); err != nil {
		logger.Error("Health check failed: could not ping DB", slog.Any("error", err))
		webutil.RespondWithJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Articles: h.articleCount})
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, healthResponse{Status: "ok", Articles: h.articleCount})
}
