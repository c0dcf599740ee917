//go:generate mockery --name ProgressService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_flight_academy/internal/content"
	"go_flight_academy/internal/middleware"
	"go_flight_academy/internal/model"
	"go_flight_academy/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressService はユーザーの学習進捗を扱います。
type ProgressService interface {
	UpsertProgress(ctx context.Context, userID uuid.UUID, slug string, req *model.UpsertProgressRequest) (*model.ProgressRecord, error)
	ListProgress(ctx context.Context, userID uuid.UUID) ([]*model.ProgressRecord, error)
	Snapshot(ctx context.Context, userID uuid.UUID) (model.ProgressSnapshot, error)
}

type progressService struct {
	db       *gorm.DB
	index    *content.Index
	progRepo repository.ProgressRepository
	now      func() time.Time
}

func NewProgressService(db *gorm.DB, index *content.Index, progRepo repository.ProgressRepository) ProgressService {
	return &progressService{
		db:       db,
		index:    index,
		progRepo: progRepo,
		now:      time.Now,
	}
}

// UpsertProgress は進捗を作成または更新します。
// 進捗は後戻りしません: completed は true から false に戻らず、scroll_progress は減りません。
func (s *progressService) UpsertProgress(ctx context.Context, userID uuid.UUID, slug string, req *model.UpsertProgressRequest) (*model.ProgressRecord, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "article_slug", slug)

	if _, ok := s.index.FindBySlug(slug); !ok {
		logger.Warn("Progress update for unknown article")
		return nil, model.NewAppError("NOT_FOUND", "指定された記事が見つかりません。", "slug", model.ErrNotFound)
	}

	var saved *model.ProgressRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.progRepo.FindByUserAndSlug(ctx, tx, userID, slug)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding progress in transaction", "error", err)
			return internalError("学習進捗の確認中にエラーが発生しました。", err)
		}

		now := s.now()
		if current == nil {
			// --- 新規作成 ---
			rec := &model.ProgressRecord{
				ProgressID:  uuid.New(),
				UserID:      userID,
				ArticleSlug: slug,
			}
			mergeProgress(rec, req, now)
			if createErr := s.progRepo.Create(ctx, tx, rec); createErr != nil {
				if errors.Is(createErr, model.ErrConflict) {
					logger.Warn("Progress was created concurrently", "error", createErr)
					return model.NewAppError("CONFLICT", "学習進捗が同時に更新されました。もう一度お試しください。", "", model.ErrConflict)
				}
				logger.Error("Error creating new progress", "error", createErr)
				return internalError("学習進捗の作成に失敗しました。", createErr)
			}
			logger.Info("Progress created", "completed", rec.Completed, "scroll_progress", rec.ScrollProgress)
			saved = rec
			return nil
		}

		// --- 更新 ---
		mergeProgress(current, req, now)
		if updateErr := s.progRepo.Update(ctx, tx, current); updateErr != nil {
			if errors.Is(updateErr, model.ErrNotFound) {
				logger.Warn("Failed to update progress, record not found", "error", updateErr)
				return model.NewAppError("NOT_FOUND", "更新対象の学習進捗が見つかりませんでした。", "", updateErr)
			}
			logger.Error("Error updating existing progress", "error", updateErr)
			return internalError("学習進捗の更新に失敗しました。", updateErr)
		}
		logger.Info("Progress updated", "completed", current.Completed, "scroll_progress", current.ScrollProgress)
		saved = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *progressService) ListProgress(ctx context.Context, userID uuid.UUID) ([]*model.ProgressRecord, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	records, err := s.progRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to list progress from repository", "error", err)
		return nil, internalError("学習進捗の取得に失敗しました。", err)
	}
	if records == nil {
		records = []*model.ProgressRecord{}
	}
	return records, nil
}

// Snapshot は slug をキーにした進捗を返します。
func (s *progressService) Snapshot(ctx context.Context, userID uuid.UUID) (model.ProgressSnapshot, error) {
	records, err := s.ListProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	snapshot := make(model.ProgressSnapshot, len(records))
	for _, r := range records {
		snapshot[r.ArticleSlug] = *r
	}
	return snapshot, nil
}

// mergeProgress はリクエストの内容を rec に反映します。
func mergeProgress(rec *model.ProgressRecord, req *model.UpsertProgressRequest, now time.Time) {
	if req.ScrollProgress != nil && *req.ScrollProgress > rec.ScrollProgress {
		rec.ScrollProgress = min(*req.ScrollProgress, 100)
	}
	if req.Completed != nil && *req.Completed {
		rec.Completed = true
	}
	if rec.ScrollProgress >= 100 {
		rec.Completed = true
	}
	if req.Bookmarked != nil {
		rec.Bookmarked = *req.Bookmarked
	}
	if req.Rating != nil {
		rating := *req.Rating
		rec.Rating = &rating
	}
	rec.LastReadAt = &now
}

// internalError は原因のエラーを ErrInternalServer と一緒に包みます。
func internalError(message string, err error) *model.AppError {
	return model.NewAppError("INTERNAL_SERVER_ERROR", message, "", fmt.Errorf("%w: %w", model.ErrInternalServer, err))
}
