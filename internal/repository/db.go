package repository

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"go_flight_academy/internal/model"

	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite" // ローカル開発用
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB は driver ("postgres" | "sqlite") に応じて接続を開きます。
func NewDB(driver, databaseURL string, appLogger *slog.Logger) (*gorm.DB, error) {

	// === slog を利用する GORM Logger の設定 ===
	var gormLogLevel gormlogger.LogLevel
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	} else {
		gormLogLevel = gormlogger.Warn
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	)

	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(databaseURL)
	case "sqlite":
		dialector = sqlite.Open(databaseURL)
	default:
		return nil, fmt.Errorf("repository.NewDB: unsupported driver %q", driver)
	}

	// === GORM 接続設定 ===
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: slogGormLogger.LogMode(gormLogLevel),
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.String("driver", driver), slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	// コネクションプールの設定
	if driver == "sqlite" {
		// SQLite は書き込みが1本なので同時接続を絞る
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	appLogger.Info("Database connection established with GORM", slog.String("driver", driver))
	return db, nil
}

// Migrate は進捗テーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.ProgressRecord{}); err != nil {
		return fmt.Errorf("repository.Migrate: %w", err)
	}
	return nil
}
