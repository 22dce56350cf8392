package config

import (
	"fmt"
	"strings"
	"time"

	"chef-express/internal/core/matching"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Matching    MatchingConfig  `mapstructure:"matching"`
	Store       StoreConfig     `mapstructure:"store"`
	Pantry      PantryConfig    `mapstructure:"pantry"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Cache       CacheConfig     `mapstructure:"cache"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Client      ClientConfig    `mapstructure:"client"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
	LogDir      string          `mapstructure:"log_dir"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// MatchingConfig 食材比對設定
type MatchingConfig struct {
	MinCoverage  int      `mapstructure:"min_coverage"`
	MinTagLength int      `mapstructure:"min_tag_length"`
	ExcludedTags []string `mapstructure:"excluded_tags"`
}

// StoreConfig 食譜資料庫設定
type StoreConfig struct {
	Path     string `mapstructure:"path"`
	SeedFile string `mapstructure:"seed_file"`
}

// PantryConfig 冰箱清單儲存設定
type PantryConfig struct {
	Backend string `mapstructure:"backend"` // sqlite 或 redis
	Path    string `mapstructure:"path"`
	Key     string `mapstructure:"key"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ClientConfig chefctl 連線設定
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 不存在時不視為錯誤
	_ = godotenv.Load()

	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	_ = v.BindEnv("matching.min_coverage", "MIN_COVERAGE")
	_ = v.BindEnv("matching.excluded_tags", "EXCLUDED_TAGS")
	_ = v.BindEnv("store.path", "RECIPE_DB_PATH")
	_ = v.BindEnv("store.seed_file", "RECIPE_SEED_FILE")
	_ = v.BindEnv("pantry.backend", "PANTRY_BACKEND")
	_ = v.BindEnv("pantry.path", "PANTRY_DB_PATH")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("cache.enabled", "CACHE_ENABLED")
	_ = v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	_ = v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	_ = v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	_ = v.BindEnv("client.base_url", "CHEF_API_URL")
	_ = v.BindEnv("dedup_window", "DEDUP_WINDOW")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("log_dir", "LOG_DIR")

	// 設定設定檔名稱和路徑
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// 讀取設定檔
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Matching.ExcludedTags = normalizeTags(config.Matching.ExcludedTags)

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// normalizeTags 去除空白與空字串，並轉為小寫
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "chef-express")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "15s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB

	// 比對設定
	v.SetDefault("matching.min_coverage", matching.DefaultMinCoverage)
	v.SetDefault("matching.min_tag_length", matching.DefaultMinTagLength)
	v.SetDefault("matching.excluded_tags", matching.DefaultExcludedTags())

	// 資料庫設定
	v.SetDefault("store.path", "data/recipes.db")
	v.SetDefault("store.seed_file", "")

	// 冰箱清單設定
	v.SetDefault("pantry.backend", "sqlite")
	v.SetDefault("pantry.path", "data/pantry.db")
	v.SetDefault("pantry.key", "chefExpress_ingredientes")

	// Redis 設定
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	// 客戶端設定
	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.timeout", "10s")

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "logs")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}
	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid server max body bytes")
	}

	if config.Matching.MinCoverage < 0 || config.Matching.MinCoverage > 100 {
		return fmt.Errorf("matching min coverage must be between 0 and 100, got %d", config.Matching.MinCoverage)
	}
	if config.Matching.MinTagLength < 0 {
		return fmt.Errorf("invalid matching min tag length")
	}

	if config.Store.Path == "" {
		return fmt.Errorf("store path is required")
	}

	switch config.Pantry.Backend {
	case "sqlite":
		if config.Pantry.Path == "" {
			return fmt.Errorf("pantry path is required for sqlite backend")
		}
	case "redis":
		if config.Redis.Addr == "" {
			return fmt.Errorf("redis addr is required for redis pantry backend")
		}
	default:
		return fmt.Errorf("unknown pantry backend %q", config.Pantry.Backend)
	}
	if config.Pantry.Key == "" {
		return fmt.Errorf("pantry key is required")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit settings")
		}
	}

	return nil
}
