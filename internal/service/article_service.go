//go:generate mockery --name ArticleService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"

	"go_flight_academy/internal/content"
	"go_flight_academy/internal/middleware"
	"go_flight_academy/internal/model"
	"go_flight_academy/internal/unlock"

	"github.com/google/uuid"
)

const (
	DefaultRelatedLimit = 3
	MaxRelatedLimit     = 20
)

// ArticleService は記事インデックスの参照と解放判定をまとめます。
// viewerID が uuid.Nil の場合は未ログインとして扱います。
type ArticleService interface {
	Search(ctx context.Context, viewerID uuid.UUID, req *model.SearchArticlesRequest) (*model.ArticleListResponse, error)
	GetArticle(ctx context.Context, viewerID uuid.UUID, slug string) (*model.ArticleResponse, error)
	GetBody(ctx context.Context, viewerID uuid.UUID, slug string) (*model.ArticleBodyResponse, error)
	GetNavigation(ctx context.Context, slug string, preferSeries bool) (*model.NavigationResponse, error)
	GetRelated(ctx context.Context, slug string, limit int) ([]model.ContentMeta, error)
	ListSeries(ctx context.Context) []model.SeriesSummary
	GetSeries(ctx context.Context, viewerID uuid.UUID, name string) (*model.SeriesDetailResponse, error)
	ListTags(ctx context.Context) []model.TagCount
}

type articleService struct {
	index      *content.Index
	progress   ProgressService
	unlockOpts unlock.Options
}

func NewArticleService(index *content.Index, progress ProgressService, unlockOpts unlock.Options) ArticleService {
	return &articleService{
		index:      index,
		progress:   progress,
		unlockOpts: unlockOpts,
	}
}

func (s *articleService) Search(ctx context.Context, viewerID uuid.UUID, req *model.SearchArticlesRequest) (*model.ArticleListResponse, error) {
	logger := middleware.GetLogger(ctx)

	res := s.index.Search(content.SearchOptions{
		Query:              req.Query,
		Tags:               req.Tags,
		Series:             req.Series,
		SortBy:             content.SortField(req.SortBy),
		SortOrder:          content.SortDirection(req.SortOrder),
		IncludeUnpublished: req.IncludeUnpublished,
		Limit:              req.Limit,
		Offset:             req.Offset,
	})

	ev := s.evaluator(ctx, viewerID)
	items := make([]*model.ArticleResponse, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, articleResponse(ev, it))
	}

	logger.Debug("Articles searched", "query", req.Query, "total", res.Total, "returned", len(items))
	return &model.ArticleListResponse{Items: items, Total: res.Total}, nil
}

func (s *articleService) GetArticle(ctx context.Context, viewerID uuid.UUID, slug string) (*model.ArticleResponse, error) {
	it, err := s.find(ctx, slug)
	if err != nil {
		return nil, err
	}
	return articleResponse(s.evaluator(ctx, viewerID), it), nil
}

// GetBody はロックされた記事の本文を返しません。
func (s *articleService) GetBody(ctx context.Context, viewerID uuid.UUID, slug string) (*model.ArticleBodyResponse, error) {
	logger := middleware.GetLogger(ctx).With("article_slug", slug)

	it, err := s.find(ctx, slug)
	if err != nil {
		return nil, err
	}

	if reason, locked := s.evaluator(ctx, viewerID).LockedReason(slug); locked {
		logger.Info("Body requested for locked article", "viewer_id", viewerID)
		return nil, model.NewAppError("ARTICLE_LOCKED", reason, "", model.ErrLocked)
	}

	body, err := it.Body(ctx)
	if err != nil {
		logger.Error("Failed to load article body", "filename", it.Filename(), "error", err)
		return nil, internalError("記事本文の読み込みに失敗しました。", err)
	}
	return &model.ArticleBodyResponse{Slug: slug, Body: body}, nil
}

func (s *articleService) GetNavigation(ctx context.Context, slug string, preferSeries bool) (*model.NavigationResponse, error) {
	if _, err := s.find(ctx, slug); err != nil {
		return nil, err
	}
	nav := s.index.Navigation(slug, preferSeries)
	resp := &model.NavigationResponse{}
	if nav.Prev != nil {
		m := nav.Prev.Meta()
		resp.Prev = &m
	}
	if nav.Next != nil {
		m := nav.Next.Meta()
		resp.Next = &m
	}
	return resp, nil
}

func (s *articleService) GetRelated(ctx context.Context, slug string, limit int) ([]model.ContentMeta, error) {
	if _, err := s.find(ctx, slug); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	limit = min(limit, MaxRelatedLimit)

	related := s.index.Related(slug, limit)
	out := make([]model.ContentMeta, 0, len(related))
	for _, it := range related {
		out = append(out, it.Meta())
	}
	return out, nil
}

func (s *articleService) ListSeries(ctx context.Context) []model.SeriesSummary {
	return s.index.SeriesSummaries()
}

func (s *articleService) GetSeries(ctx context.Context, viewerID uuid.UUID, name string) (*model.SeriesDetailResponse, error) {
	ev := s.evaluator(ctx, viewerID)
	first, ok := ev.FirstItemInSeries(name)
	if !ok {
		return nil, model.NewAppError("NOT_FOUND", "指定されたシリーズが見つかりません。", "name", model.ErrNotFound)
	}

	entries := ev.SeriesProgress(name)
	resp := &model.SeriesDetailResponse{
		Name:      name,
		FirstSlug: first,
		Items:     make([]*model.ArticleResponse, 0, len(entries)),
	}
	for _, e := range entries {
		if e.Completed {
			resp.CompletedCount++
		}
		resp.Items = append(resp.Items, articleResponse(ev, e.Item))
	}
	return resp, nil
}

func (s *articleService) ListTags(ctx context.Context) []model.TagCount {
	return s.index.TagCounts()
}

func (s *articleService) find(ctx context.Context, slug string) (*content.Item, error) {
	it, ok := s.index.FindBySlug(slug)
	if !ok {
		middleware.GetLogger(ctx).Debug("Article not found", "article_slug", slug)
		return nil, model.NewAppError("NOT_FOUND", "指定された記事が見つかりません。", "slug", model.ErrNotFound)
	}
	return it, nil
}

// evaluator はリクエストごとに進捗スナップショットを取り、判定器を作ります。
// 進捗が取れない場合は空のスナップショットで続行します。
func (s *articleService) evaluator(ctx context.Context, viewerID uuid.UUID) *unlock.Evaluator {
	viewer := unlock.Viewer{UserID: viewerID}
	if viewerID != uuid.Nil {
		snapshot, err := s.progress.Snapshot(ctx, viewerID)
		if err != nil {
			middleware.GetLogger(ctx).Warn("Progress unavailable, evaluating unlocks with empty progress",
				"viewer_id", viewerID, "error", err)
			snapshot = model.ProgressSnapshot{}
		}
		viewer.Progress = snapshot
	}
	return unlock.NewEvaluator(s.index, viewer, s.unlockOpts)
}

func articleResponse(ev *unlock.Evaluator, it *content.Item) *model.ArticleResponse {
	return &model.ArticleResponse{
		ContentMeta: it.Meta(),
		Unlock:      ev.Response(it.ID()),
	}
}
