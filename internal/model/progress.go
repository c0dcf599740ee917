// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgressRecord はユーザーごと・記事ごとの学習進捗を表します
// 記事は slug で識別します (記事IDとslugの二重管理はしない)
// (user_id, article_slug) に複合ユニークインデックス。scroll_progress は 0-100、rating は 1-5。
type ProgressRecord struct {
	ProgressID     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"progress_id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_article,unique" json:"user_id"`
	ArticleSlug    string     `gorm:"type:varchar(255);not null;index:idx_user_article,unique" json:"article_slug"`
	Completed      bool       `gorm:"not null;default:false" json:"completed"`
	ScrollProgress int        `gorm:"not null;default:0" json:"scroll_progress"`
	Bookmarked     bool       `gorm:"not null;default:false" json:"bookmarked"`
	Rating         *int       `json:"rating,omitempty"`
	LastReadAt     *time.Time `json:"last_read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (ProgressRecord) TableName() string {
	return "learning_progress"
}

// ProgressSnapshot は slug をキーにした、あるユーザーの進捗一覧です。
// 解放判定はこのスナップショットを読むだけで、書き換えはしません。
type ProgressSnapshot map[string]ProgressRecord

// UpsertProgressRequest は進捗更新リクエストのDTO
// 指定されなかったフィールドは変更しない
type UpsertProgressRequest struct {
	Completed      *bool `json:"completed,omitempty"`
	ScrollProgress *int  `json:"scroll_progress,omitempty" validate:"omitempty,min=0,max=100"`
	Bookmarked     *bool `json:"bookmarked,omitempty"`
	Rating         *int  `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
)
