// internal/handlers/article_handler.go
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

type ArticleHandler struct {
	service service.ArticleService
	logger  *slog.Logger
}

func NewArticleHandler(s service.ArticleService, logger *slog.Logger) *ArticleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArticleHandler{
		service: s,
		logger:  logger,
	}
}

// SearchArticles は記事を検索し、各記事の解放状態を付けて返します
func (h *ArticleHandler) SearchArticles(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerOr(r.Context(), h.logger).With(slog.String("handler", "SearchArticles"))
	viewerID := middleware.OptionalUserID(r.Context())

	q := r.URL.Query()
	req := model.SearchArticlesRequest{
		Query:     q.Get("q"),
		Tags:      webutil.QueryList(r, "tags"),
		Series:    q.Get("series"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	var err error
	if req.IncludeUnpublished, err = webutil.QueryBool(r, "include_unpublished", false); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if req.Limit, err = webutil.QueryInt(r, "limit", 0); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if req.Offset, err = webutil.QueryInt(r, "offset", 0); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(&req); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.Search(r.Context(), viewerID, &req)
	if err != nil {
		logger.Error("Error searching articles in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Articles searched successfully", slog.Int("total", resp.Total), slog.Int("count", len(resp.Items)))
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// GetArticle は記事のメタデータと解放状態を返します
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	logger := middleware.LoggerOr(r.Context(), h.logger).With(slog.String("handler", "GetArticle"), slog.String("slug", slug))

	resp, err := h.service.GetArticle(r.Context(), middleware.OptionalUserID(r.Context()), slug)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// GetArticleBody は本文を返します。ロック中なら 403
func (h *ArticleHandler) GetArticleBody(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	logger := middleware.LoggerOr(r.Context(), h.logger).With(slog.String("handler", "GetArticleBody"), slog.String("slug", slug))

	resp, err := h.service.GetBody(r.Context(), middleware.OptionalUserID(r.Context()), slug)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *ArticleHandler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	logger := middleware.LoggerOr(r.Context(), h.logger).With(slog.String("handler", "GetNavigation"), slog.String("slug", slug))

	preferSeries, err := webutil.QueryBool(r, "prefer_series", false)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp, err := h.service.GetNavigation(r.Context(), slug, preferSeries)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *ArticleHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	logger := middleware.LoggerOr(r.Context(), h.logger).With(slog.String("handler", "GetRelated"), slog.String("slug", slug))

	limit, err := webutil.QueryInt(r, "limit", service.DefaultRelatedLimit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if limit < 1 || limit > service.MaxRelatedLimit {
		appErr := model.NewAppError("VALIDATION_ERROR", "取得件数は1以上20以下で指定してください。", "limit", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	related, err := h.service.GetRelated(r.Context(), slug, limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, related)
}

func (h *ArticleHandler) ListSeries(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, h.service.ListSeries(r.Context()))
}

// GetSeries はシリーズの記事を order 順に、解放状態付きで返します
func (h *ArticleHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	logger := middleware.LoggerOr(r.Context(), h.logger).With(slog.String("handler", "GetSeries"), slog.String("series", name))

	resp, err := h.service.GetSeries(r.Context(), middleware.OptionalUserID(r.Context()), name)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *ArticleHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, h.service.ListTags(r.Context()))
}
