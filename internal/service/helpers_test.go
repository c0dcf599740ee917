package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"go_flight_academy/internal/content"
	"go_flight_academy/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite" // テスト用にsqliteを使用
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- テストヘルパー関数 (インメモリDBセットアップ) ---
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))
	return db
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

// testIndex: PPL シリーズ3本 (preflight → pattern → stalls) とシリーズ外の metar
func testIndex(t *testing.T) *content.Index {
	t.Helper()
	idx, err := content.Build(context.Background(), content.NewMemorySource(
		content.StaticModule{Filename: "ppl/01.md", Meta: content.RawMeta{Title: "Preflight", Slug: "preflight", Series: "PPL", Order: intPtr(1), Tags: []string{"safety"}, PublishedAt: "2024-02-01"}, Body: "preflight body"},
		content.StaticModule{Filename: "ppl/02.md", Meta: content.RawMeta{Title: "Pattern", Slug: "pattern", Series: "PPL", Order: intPtr(2), PublishedAt: "2024-02-08"}, Body: "pattern body"},
		content.StaticModule{Filename: "ppl/03.md", Meta: content.RawMeta{Title: "Stalls", Slug: "stalls", Series: "PPL", Order: intPtr(3), Tags: []string{"safety"}, PublishedAt: "2024-02-15"}, Body: "stalls body"},
		content.StaticModule{Filename: "wx/metar.md", Meta: content.RawMeta{Title: "METAR", Slug: "metar", Tags: []string{"weather", "safety"}, PublishedAt: "2024-01-20"}, Body: "metar body"},
	), content.BuildOptions{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)
	return idx
}
