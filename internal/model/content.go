// internal/model/content.go
package model

import "time"

const (
	DefaultContentType = "article"
	DefaultReadingTime = 5 // 分
	// UnorderedPosition は order 未指定の記事をソートするときの値です。
	UnorderedPosition = 999
)

// ContentMeta は検証・正規化済みの記事メタデータです。
type ContentMeta struct {
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Tags        []string   `json:"tags"`
	Series      string     `json:"series,omitempty"`
	Order       *int       `json:"order,omitempty"`
	Type        string     `json:"type"`
	ReadingTime int        `json:"reading_time"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Author      string     `json:"author,omitempty"`
	Difficulty  string     `json:"difficulty,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
}

// SortOrder は order 未指定なら UnorderedPosition を返します。
func (m *ContentMeta) SortOrder() int {
	if m.Order == nil {
		return UnorderedPosition
	}
	return *m.Order
}

// InSeries はシリーズに属する記事かどうか
func (m *ContentMeta) InSeries() bool {
	return m.Series != ""
}

// UnlockState は記事の解放状態です。
type UnlockState string

const (
	UnlockStateUnlocked      UnlockState = "unlocked"
	UnlockStateLocked        UnlockState = "locked"
	UnlockStateIndeterminate UnlockState = "indeterminate"
)

// UnlockResponse は記事ごとの解放判定のレスポンスDTO
type UnlockResponse struct {
	Unlocked     bool        `json:"unlocked"`
	State        UnlockState `json:"state"`
	Reason       *string     `json:"reason,omitempty"`
	PreviousSlug *string     `json:"previous_slug,omitempty"`
}

// ArticleResponse は記事メタデータと解放状態をまとめたレスポンスDTO
type ArticleResponse struct {
	ContentMeta
	Unlock UnlockResponse `json:"unlock"`
}

type ArticleListResponse struct {
	Items []*ArticleResponse `json:"items"`
	Total int                `json:"total"`
}

type ArticleBodyResponse struct {
	Slug string `json:"slug"`
	Body string `json:"body"`
}

type NavigationResponse struct {
	Prev *ContentMeta `json:"prev,omitempty"`
	Next *ContentMeta `json:"next,omitempty"`
}

// SeriesSummary はシリーズ一覧の1行分
type SeriesSummary struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	FirstSlug string `json:"first_slug"`
}

type SeriesDetailResponse struct {
	Name           string             `json:"name"`
	FirstSlug      string             `json:"first_slug"`
	CompletedCount int                `json:"completed_count"`
	Items          []*ArticleResponse `json:"items"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// SearchArticlesRequest は記事検索のクエリパラメータ
type SearchArticlesRequest struct {
	Query              string   `json:"q"`
	Tags               []string `json:"tags"`
	Series             string   `json:"series"`
	SortBy             string   `json:"sort_by" validate:"omitempty,oneof=date title order"`
	SortOrder          string   `json:"sort_order" validate:"omitempty,oneof=asc desc"`
	IncludeUnpublished bool     `json:"include_unpublished"`
	Limit              int      `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset             int      `json:"offset" validate:"omitempty,min=0"`
}
