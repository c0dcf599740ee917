// internal/handlers/progress_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_flight_academy/internal/handlers"
	"go_flight_academy/internal/middleware"
	"go_flight_academy/internal/model"
	"go_flight_academy/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProgressRouter(h *handlers.ProgressHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.DevUserContextMiddleware)
	r.Get("/progress", h.ListProgress)
	r.Put("/progress/{slug}", h.UpsertProgress)
	return r
}

func TestProgressHandler_UpsertProgress(t *testing.T) {
	userID := uuid.New()
	saved := &model.ProgressRecord{ProgressID: uuid.New(), UserID: userID, ArticleSlug: "preflight", Completed: true, ScrollProgress: 100}

	tests := []struct {
		name           string
		userID         *uuid.UUID
		body           string
		setupMock      func(m *mocks.ProgressService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "正常系: 完了を記録",
			userID: &userID,
			body:   `{"completed":true,"scroll_progress":100}`,
			setupMock: func(m *mocks.ProgressService) {
				m.On("UpsertProgress", mock.Anything, userID, "preflight", mock.MatchedBy(func(req *model.UpsertProgressRequest) bool {
					return req.Completed != nil && *req.Completed && req.ScrollProgress != nil && *req.ScrollProgress == 100
				})).Return(saved, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "異常系: ユーザーIDなし",
			body:           `{"completed":true}`,
			setupMock:      func(m *mocks.ProgressService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "UNAUTHORIZED",
		},
		{
			name:           "異常系: JSON が壊れている",
			userID:         &userID,
			body:           `{"completed":`,
			setupMock:      func(m *mocks.ProgressService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST_BODY",
		},
		{
			name:           "異常系: scroll_progress が範囲外",
			userID:         &userID,
			body:           `{"scroll_progress":101}`,
			setupMock:      func(m *mocks.ProgressService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "異常系: rating が範囲外",
			userID:         &userID,
			body:           `{"rating":0}`,
			setupMock:      func(m *mocks.ProgressService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:   "異常系: 存在しない記事",
			userID: &userID,
			body:   `{"bookmarked":true}`,
			setupMock: func(m *mocks.ProgressService) {
				m.On("UpsertProgress", mock.Anything, userID, "preflight", mock.Anything).
					Return(nil, model.NewAppError("NOT_FOUND", "指定された記事が見つかりません。", "slug", model.ErrNotFound)).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
		{
			name:   "異常系: 同時作成による競合",
			userID: &userID,
			body:   `{"bookmarked":true}`,
			setupMock: func(m *mocks.ProgressService) {
				m.On("UpsertProgress", mock.Anything, userID, "preflight", mock.Anything).
					Return(nil, model.NewAppError("CONFLICT", "学習進捗が同時に更新されました。", "", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "CONFLICT",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := mocks.NewProgressService(t)
			tc.setupMock(m)
			router := newProgressRouter(handlers.NewProgressHandler(m, testLogger))

			req := httptest.NewRequest(http.MethodPut, "/progress/preflight", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			if tc.userID != nil {
				req.Header.Set("X-User-ID", tc.userID.String())
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, rr.Body.String())
			if tc.expectedCode != "" {
				verifyErrorResponse(t, rr.Body.Bytes(), tc.expectedCode)
				return
			}
			got := decodeJSON[model.ProgressRecord](t, rr.Body.Bytes())
			assert.Equal(t, saved.ProgressID, got.ProgressID)
			assert.True(t, got.Completed)
		})
	}
}

func TestProgressHandler_ListProgress(t *testing.T) {
	userID := uuid.New()
	records := []*model.ProgressRecord{
		{ProgressID: uuid.New(), UserID: userID, ArticleSlug: "pattern", ScrollProgress: 40},
		{ProgressID: uuid.New(), UserID: userID, ArticleSlug: "preflight", Completed: true, ScrollProgress: 100},
	}

	m := mocks.NewProgressService(t)
	m.On("ListProgress", mock.Anything, userID).Return(records, nil).Once()
	router := newProgressRouter(handlers.NewProgressHandler(m, testLogger))

	rr := serve(router, http.MethodGet, "/progress", userHeader(userID))
	require.Equal(t, http.StatusOK, rr.Code)

	var got []*model.ProgressRecord
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "pattern", got[0].ArticleSlug)
	assert.Equal(t, 40, got[0].ScrollProgress)

	rr = serve(router, http.MethodGet, "/progress", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
