// internal/repository/postgres_integration_test.go
package repository_test

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"go_flight_academy/internal/config"
	"go_flight_academy/internal/content"
	"go_flight_academy/internal/model"
	"go_flight_academy/internal/repository"
	"go_flight_academy/internal/service"

	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// pgDB は Docker 上の PostgreSQL への接続。Docker が使えない環境では nil のまま
var pgDB *gorm.DB

const pgContainerName = "test_postgres_flight_academy"

// TestMain は PostgreSQL コンテナを起動してからパッケージのテストを実行します。
// Docker が使えない場合や -short 指定時は、PostgreSQL のテストだけスキップされます。
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		logger.Warn("Docker unavailable, skipping PostgreSQL integration tests", slog.Any("error", err))
		os.Exit(m.Run())
	}
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       pgContainerName,
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=flight_academy",
			"listen_addresses = '*'",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start PostgreSQL resource: %s", err)
	}
	_ = resource.Expire(300) // 異常終了してもコンテナを残さない

	// devcontainer からは host.docker.internal 経由で接続する
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		host = "localhost"
	}
	dsn := fmt.Sprintf("host=%s port=%s user=user password=secret dbname=flight_academy sslmode=disable TimeZone=Asia/Tokyo",
		host, resource.GetPort("5432/tcp"))

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := pool.Retry(func() error {
		var errRetry error
		pgDB, errRetry = repository.NewDB(config.DriverPostgres, dsn, quiet)
		if errRetry != nil {
			logger.Info("Retry: PostgreSQL not ready yet", slog.Any("error", errRetry))
		}
		return errRetry
	}); err != nil {
		if pErr := pool.Purge(resource); pErr != nil {
			log.Printf("Warning: Could not purge resource after connection retry failed: %s", pErr)
		}
		log.Fatalf("Could not connect to PostgreSQL container after retries: %s", err)
	}

	if err := repository.Migrate(pgDB); err != nil {
		pool.Purge(resource)
		log.Fatalf("Could not migrate database: %s", err)
	}
	logger.Info("PostgreSQL container ready", slog.String("container_name", pgContainerName))

	code := m.Run()

	if sqlDB, err := pgDB.DB(); err == nil {
		sqlDB.Close()
	}
	if err := pool.Purge(resource); err != nil {
		log.Fatalf("Could not purge PostgreSQL resource: %s", err)
	}
	os.Exit(code)
}

// requirePostgres は PostgreSQL がなければテストをスキップし、テーブルを空にして返します。
func requirePostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if pgDB == nil {
		t.Skip("PostgreSQL container is not available")
	}
	require.NoError(t, pgDB.Exec("TRUNCATE TABLE learning_progress").Error)
	return pgDB
}

func TestPostgres_ProgressRepository(t *testing.T) {
	db := requirePostgres(t)
	ctx := context.Background()
	repo := repository.NewGormProgressRepository()
	userID := uuid.New()

	rec := &model.ProgressRecord{ProgressID: uuid.New(), UserID: userID, ArticleSlug: "preflight", ScrollProgress: 30}
	require.NoError(t, repo.Create(ctx, db, rec))

	t.Run("uuid カラムの往復", func(t *testing.T) {
		got, err := repo.FindByUserAndSlug(ctx, db, userID, "preflight")
		require.NoError(t, err)
		assert.Equal(t, rec.ProgressID, got.ProgressID)
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, 30, got.ScrollProgress)
	})

	t.Run("重複キーは ErrConflict", func(t *testing.T) {
		dup := &model.ProgressRecord{ProgressID: uuid.New(), UserID: userID, ArticleSlug: "preflight"}
		err := repo.Create(ctx, db, dup)
		assert.ErrorIs(t, err, model.ErrConflict)
	})

	t.Run("更新と存在しないレコードの更新", func(t *testing.T) {
		rec.Completed = true
		rec.ScrollProgress = 100
		require.NoError(t, repo.Update(ctx, db, rec))

		got, err := repo.FindByUserAndSlug(ctx, db, userID, "preflight")
		require.NoError(t, err)
		assert.True(t, got.Completed)
		assert.Equal(t, 100, got.ScrollProgress)

		missing := &model.ProgressRecord{ProgressID: uuid.New(), UserID: userID, ArticleSlug: "pattern"}
		assert.ErrorIs(t, repo.Update(ctx, db, missing), model.ErrNotFound)
	})

	t.Run("存在しない進捗は ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByUserAndSlug(ctx, db, uuid.New(), "preflight")
		assert.True(t, errors.Is(err, model.ErrNotFound))
	})
}

func TestPostgres_UpsertProgress(t *testing.T) {
	db := requirePostgres(t)
	ctx := context.Background()
	order := 1
	idx, err := content.Build(ctx, content.NewMemorySource(
		content.StaticModule{Filename: "ppl/01.md", Meta: content.RawMeta{Title: "Preflight", Slug: "preflight", Series: "PPL", Order: &order}},
	), content.BuildOptions{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	svc := service.NewProgressService(db, idx, repository.NewGormProgressRepository())
	userID := uuid.New()
	scroll := func(v int) *int { return &v }

	first, err := svc.UpsertProgress(ctx, userID, "preflight", &model.UpsertProgressRequest{ScrollProgress: scroll(60)})
	require.NoError(t, err)
	assert.Equal(t, 60, first.ScrollProgress)
	assert.False(t, first.Completed)

	// 進捗は後戻りしない
	second, err := svc.UpsertProgress(ctx, userID, "preflight", &model.UpsertProgressRequest{ScrollProgress: scroll(20)})
	require.NoError(t, err)
	assert.Equal(t, first.ProgressID, second.ProgressID)
	assert.Equal(t, 60, second.ScrollProgress)

	third, err := svc.UpsertProgress(ctx, userID, "preflight", &model.UpsertProgressRequest{ScrollProgress: scroll(100)})
	require.NoError(t, err)
	assert.True(t, third.Completed)

	snapshot, err := svc.Snapshot(ctx, userID)
	require.NoError(t, err)
	require.Contains(t, snapshot, "preflight")
	assert.True(t, snapshot["preflight"].Completed)
	assert.Equal(t, 100, snapshot["preflight"].ScrollProgress)
}
