// internal/handlers/progress_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_flight_academy/internal/middleware"
	"go_flight_academy/internal/model"
	"go_flight_academy/internal/service"
	"go_flight_academy/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ProgressHandler struct {
	service service.ProgressService
	logger  *slog.Logger
}

func NewProgressHandler(s service.ProgressService, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressHandler{
		service: s,
		logger:  logger,
	}
}

// ListProgress はログインユーザーの進捗一覧を返します
func (h *ProgressHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerOr(r.Context(), h.logger).With(slog.String("handler", "ListProgress"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	records, err := h.service.ListProgress(r.Context(), userID)
	if err != nil {
		logger.Error("Error listing progress in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, records)
}

// UpsertProgress は記事の進捗を作成・更新します
func (h *ProgressHandler) UpsertProgress(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	logger := middleware.LoggerOr(r.Context(), h.logger).With(slog.String("handler", "UpsertProgress"), slog.String("slug", slug))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.UpsertProgressRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	rec, err := h.service.UpsertProgress(r.Context(), userID, slug, &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Progress saved", slog.Bool("completed", rec.Completed), slog.Int("scroll_progress", rec.ScrollProgress))
	webutil.RespondWithJSON(w, http.StatusOK, rec)
}
