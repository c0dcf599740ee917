// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "go-flight-academy"
	AppVersion = "0.3.0"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// デフォルト設定値
const (
	DefaultServerPort          = ":8080"
	DefaultLogLevel            = "info"
	DefaultDatabaseDriver      = DriverPostgres
	DefaultContentDir          = "./content"
	DefaultLoadConcurrency     = 8
	DefaultModuleTimeout       = 5 * time.Second
	DefaultScrollThreshold     = 95
	DefaultIndeterminatePolicy = "open"
	DefaultCORSMaxAge          = 300
)
