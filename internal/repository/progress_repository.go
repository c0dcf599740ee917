// internal/repository/progress_repository.go

//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_flight_academy/internal/middleware"
	"go_flight_academy/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ProgressRepository interface {
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.ProgressRecord, error)
	FindByUserAndSlug(ctx context.Context, db *gorm.DB, userID uuid.UUID, slug string) (*model.ProgressRecord, error)
	Create(ctx context.Context, tx *gorm.DB, progress *model.ProgressRecord) error // トランザクション対応
	Update(ctx context.Context, tx *gorm.DB, progress *model.ProgressRecord) error // トランザクション対応
}

// DB接続はService層から渡される
type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.ProgressRecord, error) {
	logger := middleware.GetLogger(ctx)
	var records []*model.ProgressRecord
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("article_slug ASC").Find(&records)
	if result.Error != nil {
		logger.Error("Error finding progress by user in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByUser: %w", result.Error)
	}
	return records, nil
}

func (r *gormProgressRepository) FindByUserAndSlug(ctx context.Context, db *gorm.DB, userID uuid.UUID, slug string) (*model.ProgressRecord, error) {
	logger := middleware.GetLogger(ctx)
	var record model.ProgressRecord
	result := db.WithContext(ctx).Where("user_id = ? AND article_slug = ?", userID, slug).First(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding progress by slug in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"article_slug", slug,
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByUserAndSlug: %w", result.Error)
	}
	return &record, nil
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.ProgressRecord) error {
	logger := middleware.GetLogger(ctx)
	// ProgressID は Service 層で設定済み
	result := tx.WithContext(ctx).Create(progress)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if (errors.As(result.Error, &pgErr) && pgErr.Code == "23505") || errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			logger.Warn("Duplicate key error on create progress",
				"error", result.Error,
				"user_id", progress.UserID.String(),
				"article_slug", progress.ArticleSlug,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating progress in DB",
			"error", result.Error,
			"user_id", progress.UserID.String(),
			"article_slug", progress.ArticleSlug,
		)
		return fmt.Errorf("gormProgressRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) Update(ctx context.Context, tx *gorm.DB, progress *model.ProgressRecord) error {
	logger := middleware.GetLogger(ctx)
	// 主キーで対象を特定し、指定カラムのみ更新する (false や 0 もそのまま書き込む)
	result := tx.WithContext(ctx).
		Model(progress).
		Select("completed", "scroll_progress", "bookmarked", "rating", "last_read_at", "updated_at").
		Updates(progress)
	if result.Error != nil {
		logger.Error("Error updating progress in DB",
			"error", result.Error,
			"progress_id", progress.ProgressID.String(),
		)
		return fmt.Errorf("gormProgressRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
