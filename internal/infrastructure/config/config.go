package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig        `mapstructure:"app"`
	Server      ServerConfig     `mapstructure:"server"`
	Catalog     CatalogConfig    `mapstructure:"catalog"`
	Preferences PreferenceConfig `mapstructure:"preferences"`
	Search      SearchConfig     `mapstructure:"search"`
	RateLimit   RateLimitConfig  `mapstructure:"rate_limit"`
	DedupWindow time.Duration    `mapstructure:"dedup_window"`
	LogLevel    string           `mapstructure:"log_level"`
	LogDir      string           `mapstructure:"log_dir"`
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

// CatalogConfig 餐廳目錄來源
type CatalogConfig struct {
	Source   string        `mapstructure:"source"` // file | remote
	Path     string        `mapstructure:"path"`   // 空值使用內建資料
	URL      string        `mapstructure:"url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// PreferenceConfig 飲食偏好儲存
type PreferenceConfig struct {
	Store         string `mapstructure:"store"` // memory | redis
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	KeyPrefix     string `mapstructure:"key_prefix"`
	PresetsFile   string `mapstructure:"presets_file"`
}

// SearchConfig 搜尋設定
type SearchConfig struct {
	HistoryLimit  int    `mapstructure:"history_limit"`
	RandomTrigger string `mapstructure:"random_trigger"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件，不存在時只使用環境變數
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	v.BindEnv("catalog.source", "CATALOG_SOURCE")
	v.BindEnv("catalog.path", "CATALOG_PATH")
	v.BindEnv("catalog.url", "CATALOG_URL")
	v.BindEnv("preferences.store", "PREFERENCE_STORE")
	v.BindEnv("preferences.redis_addr", "REDIS_ADDR")
	v.BindEnv("preferences.redis_password", "REDIS_PASSWORD")
	v.BindEnv("preferences.redis_db", "REDIS_DB")
	v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	v.BindEnv("dedup_window", "DEDUP_WINDOW")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("server.port", "PORT")

	// 設定設定檔名稱和路徑
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	// 讀取設定檔
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// logger 尚未初始化，改用 fmt.Println
	fmt.Println("Loading configuration",
		"catalog_source:", v.GetString("catalog.source"),
		"preference_store:", v.GetString("preferences.store"),
		"redis_addr:", maskAddr(v.GetString("preferences.redis_addr")),
	)

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAddr 遮罩 Redis 位址中的帳密
func maskAddr(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 {
		return "****" + addr[i:]
	}
	return addr
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "canteen-finder")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "15s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB

	// 目錄設定
	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.timeout", "10s")
	v.SetDefault("catalog.cache_ttl", "5m")

	// 偏好設定
	v.SetDefault("preferences.store", "memory")
	v.SetDefault("preferences.redis_addr", "localhost:6379")
	v.SetDefault("preferences.redis_password", "")
	v.SetDefault("preferences.redis_db", 0)
	v.SetDefault("preferences.key_prefix", "canteen-finder:preferences")
	v.SetDefault("preferences.presets_file", "")

	// 搜尋設定
	v.SetDefault("search.history_limit", 5)
	v.SetDefault("search.random_trigger", "bingung")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", config.Server.Port)
	}
	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body bytes")
	}

	// 驗證目錄設定
	switch config.Catalog.Source {
	case "file":
	case "remote":
		if config.Catalog.URL == "" {
			return fmt.Errorf("catalog url is required for remote source")
		}
		if config.Catalog.Timeout <= 0 {
			return fmt.Errorf("invalid catalog timeout")
		}
	default:
		return fmt.Errorf("unknown catalog source %q", config.Catalog.Source)
	}
	if config.Catalog.CacheTTL < 0 {
		return fmt.Errorf("invalid catalog cache ttl")
	}

	// 驗證偏好設定
	switch config.Preferences.Store {
	case "memory":
	case "redis":
		if config.Preferences.RedisAddr == "" {
			return fmt.Errorf("redis addr is required for redis preference store")
		}
	default:
		return fmt.Errorf("unknown preference store %q", config.Preferences.Store)
	}

	// 驗證搜尋設定
	if config.Search.HistoryLimit <= 0 {
		return fmt.Errorf("invalid search history limit")
	}

	// 驗證限流設定
	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}

	return nil
}
