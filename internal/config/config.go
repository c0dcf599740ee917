// internal/config/config.go
package config

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		URL    string `mapstructure:"url"`
		Driver string `mapstructure:"driver"` // postgres | sqlite
	} `mapstructure:"database"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Auth struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"auth"`
	JWT struct {
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"jwt"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
		MaxAge         int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
	Content struct {
		Dir             string        `mapstructure:"dir"`
		StrictSlugs     bool          `mapstructure:"strict_slugs"`
		LoadConcurrency int           `mapstructure:"load_concurrency"`
		ModuleTimeout   time.Duration `mapstructure:"module_timeout"`
	} `mapstructure:"content"`
	Unlock struct {
		// 0 以下ならスクロール率による完了判定を行わない
		ScrollThreshold     int    `mapstructure:"scroll_threshold"`
		IndeterminatePolicy string `mapstructure:"indeterminate_policy"` // open | closed
	} `mapstructure:"unlock"`
}

var Cfg Config

func LoadConfig(path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	// APP_DATABASE_URL のように接頭辞をつけて上書きできる
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.BindEnv("auth.enabled", "AUTH_ENABLED")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	v.BindEnv("content.dir", "CONTENT_DIR")

	// 未設定でも Unmarshal で拾えるようにデフォルトを登録しておく
	v.SetDefault("unlock.scroll_threshold", DefaultScrollThreshold)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	applyDefaults(&cfg, v.IsSet("auth.enabled"))
	if err := validate(&cfg); err != nil {
		return err
	}
	Cfg = cfg

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Database Driver: %s", Cfg.Database.Driver)
	log.Printf("Content Dir: %s", Cfg.Content.Dir)
	log.Printf("Auth Enabled: %t", Cfg.Auth.Enabled)
	log.Printf("Unlock: scroll_threshold=%d indeterminate_policy=%s", Cfg.Unlock.ScrollThreshold, Cfg.Unlock.IndeterminatePolicy)

	return nil
}

// --- デフォルト値の設定 ---
func applyDefaults(cfg *Config, authSet bool) {
	if cfg.Server.Port == "" {
		log.Printf("Server port not set, using default '%s'", DefaultServerPort)
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DefaultDatabaseDriver
	}
	if cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Content.Dir == "" {
		log.Printf("Content dir not set, using default '%s'", DefaultContentDir)
		cfg.Content.Dir = DefaultContentDir
	}
	if cfg.Content.LoadConcurrency <= 0 {
		cfg.Content.LoadConcurrency = DefaultLoadConcurrency
	}
	if cfg.Content.ModuleTimeout <= 0 {
		cfg.Content.ModuleTimeout = DefaultModuleTimeout
	}
	if cfg.Unlock.IndeterminatePolicy == "" {
		cfg.Unlock.IndeterminatePolicy = DefaultIndeterminatePolicy
	}
	if cfg.CORS.MaxAge <= 0 {
		cfg.CORS.MaxAge = DefaultCORSMaxAge
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}

	// 未設定なら認証は有効
	if !authSet {
		log.Println("Auth enabled flag not set, defaulting to true (enabled)")
		cfg.Auth.Enabled = true
	}
}

func validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return errors.New("config: database.driver must be 'postgres' or 'sqlite'")
	}
	switch cfg.Unlock.IndeterminatePolicy {
	case "open", "closed":
	default:
		return errors.New("config: unlock.indeterminate_policy must be 'open' or 'closed'")
	}
	if cfg.Auth.Enabled && cfg.JWT.SecretKey == "" {
		return errors.New("config: jwt.secret_key is required when auth is enabled")
	}
	return nil
}
