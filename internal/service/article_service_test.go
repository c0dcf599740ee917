// internal/service/article_service_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"go_flight_academy/internal/model"
	servicemocks "go_flight_academy/internal/service/mocks"
	"go_flight_academy/internal/unlock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slugsOfResponses(items []*model.ArticleResponse) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Slug)
	}
	return out
}

func Test_articleService_GetBody(t *testing.T) {
	ctx := context.Background()
	idx := testIndex(t)
	userID := uuid.New()

	tests := []struct {
		name      string
		viewerID  uuid.UUID
		slug      string
		setupMock func(m *servicemocks.ProgressService)
		wantErr   error
		wantBody  string
	}{
		{
			name:      "未ログイン: シリーズ先頭は読める",
			viewerID:  uuid.Nil,
			slug:      "preflight",
			setupMock: func(m *servicemocks.ProgressService) {},
			wantBody:  "preflight body",
		},
		{
			name:      "未ログイン: 2本目はロック",
			viewerID:  uuid.Nil,
			slug:      "pattern",
			setupMock: func(m *servicemocks.ProgressService) {},
			wantErr:   model.ErrLocked,
		},
		{
			name:     "ログイン済み: 前の記事が完了していれば読める",
			viewerID: userID,
			slug:     "pattern",
			setupMock: func(m *servicemocks.ProgressService) {
				m.On("Snapshot", ctx, userID).Return(model.ProgressSnapshot{"preflight": {Completed: true}}, nil).Once()
			},
			wantBody: "pattern body",
		},
		{
			name:     "ログイン済み: 前の記事が未完了ならロック",
			viewerID: userID,
			slug:     "stalls",
			setupMock: func(m *servicemocks.ProgressService) {
				m.On("Snapshot", ctx, userID).Return(model.ProgressSnapshot{"preflight": {Completed: true}, "pattern": {ScrollProgress: 40}}, nil).Once()
			},
			wantErr: model.ErrLocked,
		},
		{
			name:     "進捗が取れなくても空の進捗として判定を続ける",
			viewerID: userID,
			slug:     "metar",
			setupMock: func(m *servicemocks.ProgressService) {
				m.On("Snapshot", ctx, userID).Return(nil, errors.New("db down")).Once()
			},
			wantBody: "metar body",
		},
		{
			name:      "存在しない記事",
			viewerID:  uuid.Nil,
			slug:      "missing",
			setupMock: func(m *servicemocks.ProgressService) {},
			wantErr:   model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProgress := new(servicemocks.ProgressService)
			tt.setupMock(mockProgress)
			svc := NewArticleService(idx, mockProgress, unlock.DefaultOptions())

			resp, err := svc.GetBody(ctx, tt.viewerID, tt.slug)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, resp.Body)
				assert.Equal(t, tt.slug, resp.Slug)
			}
			mockProgress.AssertExpectations(t)
		})
	}
}

func Test_articleService_GetBodyLockedReason(t *testing.T) {
	ctx := context.Background()
	svc := NewArticleService(testIndex(t), new(servicemocks.ProgressService), unlock.DefaultOptions())

	_, err := svc.GetBody(ctx, uuid.Nil, "pattern")
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ARTICLE_LOCKED", appErr.Detail.Code)
	assert.Equal(t, unlock.ReasonLoginRequired, appErr.Detail.Message)
}

func Test_articleService_Search(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	mockProgress := new(servicemocks.ProgressService)
	mockProgress.On("Snapshot", ctx, userID).Return(model.ProgressSnapshot{"preflight": {ScrollProgress: 95}}, nil).Once()
	svc := NewArticleService(testIndex(t), mockProgress, unlock.DefaultOptions())

	resp, err := svc.Search(ctx, userID, &model.SearchArticlesRequest{Tags: []string{"safety"}, SortBy: "title", SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, []string{"metar", "preflight", "stalls"}, slugsOfResponses(resp.Items))

	byslug := make(map[string]*model.ArticleResponse)
	for _, it := range resp.Items {
		byslug[it.Slug] = it
	}
	assert.True(t, byslug["metar"].Unlock.Unlocked)
	assert.True(t, byslug["preflight"].Unlock.Unlocked)
	assert.False(t, byslug["stalls"].Unlock.Unlocked, "pattern が未完了")
	require.NotNil(t, byslug["stalls"].Unlock.PreviousSlug)
	assert.Equal(t, "pattern", *byslug["stalls"].Unlock.PreviousSlug)
	mockProgress.AssertExpectations(t)
}

func Test_articleService_GetArticle(t *testing.T) {
	ctx := context.Background()
	svc := NewArticleService(testIndex(t), new(servicemocks.ProgressService), unlock.DefaultOptions())

	resp, err := svc.GetArticle(ctx, uuid.Nil, "pattern")
	require.NoError(t, err)
	assert.Equal(t, "Pattern", resp.Title)
	assert.Equal(t, model.UnlockStateLocked, resp.Unlock.State)
	require.NotNil(t, resp.Unlock.Reason)

	_, err = svc.GetArticle(ctx, uuid.Nil, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_articleService_NavigationAndRelated(t *testing.T) {
	ctx := context.Background()
	svc := NewArticleService(testIndex(t), new(servicemocks.ProgressService), unlock.DefaultOptions())

	nav, err := svc.GetNavigation(ctx, "pattern", true)
	require.NoError(t, err)
	require.NotNil(t, nav.Prev)
	require.NotNil(t, nav.Next)
	assert.Equal(t, "preflight", nav.Prev.Slug)
	assert.Equal(t, "stalls", nav.Next.Slug)

	nav, err = svc.GetNavigation(ctx, "metar", false)
	require.NoError(t, err)
	require.NotNil(t, nav.Prev)
	assert.Equal(t, "preflight", nav.Prev.Slug, "公開日が1つ新しい記事")
	assert.Nil(t, nav.Next)

	_, err = svc.GetNavigation(ctx, "missing", false)
	assert.ErrorIs(t, err, model.ErrNotFound)

	related, err := svc.GetRelated(ctx, "stalls", 0)
	require.NoError(t, err)
	require.Len(t, related, 3, "limit 0 は既定の3件")
	assert.Equal(t, "preflight", related[0].Slug, "同じシリーズかつ共通タグ")

	related, err = svc.GetRelated(ctx, "stalls", 1)
	require.NoError(t, err)
	assert.Len(t, related, 1)
}

func Test_articleService_Series(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	mockProgress := new(servicemocks.ProgressService)
	mockProgress.On("Snapshot", ctx, userID).Return(model.ProgressSnapshot{"preflight": {Completed: true}}, nil).Once()
	svc := NewArticleService(testIndex(t), mockProgress, unlock.DefaultOptions())

	summaries := svc.ListSeries(ctx)
	require.Len(t, summaries, 1)
	assert.Equal(t, model.SeriesSummary{Name: "PPL", Count: 3, FirstSlug: "preflight"}, summaries[0])

	detail, err := svc.GetSeries(ctx, userID, "PPL")
	require.NoError(t, err)
	assert.Equal(t, "preflight", detail.FirstSlug)
	assert.Equal(t, 1, detail.CompletedCount)
	assert.Equal(t, []string{"preflight", "pattern", "stalls"}, slugsOfResponses(detail.Items))
	assert.True(t, detail.Items[1].Unlock.Unlocked)
	assert.False(t, detail.Items[2].Unlock.Unlocked)

	_, err = svc.GetSeries(ctx, uuid.Nil, "CPL")
	assert.ErrorIs(t, err, model.ErrNotFound)

	tags := svc.ListTags(ctx)
	require.NotEmpty(t, tags)
	assert.Equal(t, model.TagCount{Tag: "safety", Count: 3}, tags[0])
	mockProgress.AssertExpectations(t)
}
