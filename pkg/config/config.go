package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable consumed by the service.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Telegram     TelegramConfig
	Upload       UploadConfig
	Catalog      CatalogConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env              string   `envconfig:"PRINTLAB_APP_ENV" required:"true"`
	Port             string   `envconfig:"PRINTLAB_APP_PORT" default:"8080"`
	LogLevel         string   `envconfig:"PRINTLAB_LOG_LEVEL" default:"info"`
	LogWarnStack     bool     `envconfig:"PRINTLAB_LOG_WARN_STACK" default:"false"`
	ExtraCORSOrigins []string `envconfig:"PRINTLAB_EXTRA_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PRINTLAB_DB_DSN"`
	Driver string `envconfig:"PRINTLAB_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"PRINTLAB_DB_HOST"`
	Port     int    `envconfig:"PRINTLAB_DB_PORT" default:"5432"`
	User     string `envconfig:"PRINTLAB_DB_USER"`
	Password string `envconfig:"PRINTLAB_DB_PASSWORD"`
	Name     string `envconfig:"PRINTLAB_DB_NAME"`
	SSLMode  string `envconfig:"PRINTLAB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRINTLAB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PRINTLAB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PRINTLAB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRINTLAB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name are required")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"PRINTLAB_REDIS_URL"`
	Address      string        `envconfig:"PRINTLAB_REDIS_ADDR"`
	Password     string        `envconfig:"PRINTLAB_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRINTLAB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRINTLAB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRINTLAB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRINTLAB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRINTLAB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRINTLAB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type TelegramConfig struct {
	BotToken string        `envconfig:"PRINTLAB_TELEGRAM_BOT_TOKEN"`
	ChatID   string        `envconfig:"PRINTLAB_TELEGRAM_CHAT_ID"`
	Timeout  time.Duration `envconfig:"PRINTLAB_TELEGRAM_TIMEOUT" default:"10s"`
}

// Enabled reports whether the notification sink is configured. The intake
// flow treats a disabled sink the same as a failed send: logged, never fatal.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

type UploadConfig struct {
	Dir         string `envconfig:"PRINTLAB_UPLOAD_DIR" default:"uploads"`
	PublicPath  string `envconfig:"PRINTLAB_UPLOAD_PUBLIC_PATH" default:"/uploads"`
	MaxUploadMB int    `envconfig:"PRINTLAB_MAX_UPLOAD_MB" default:"10"`
}

// MaxUploadBytes returns the per-file upload ceiling in bytes.
func (u UploadConfig) MaxUploadBytes() int64 {
	return int64(u.MaxUploadMB) * 1024 * 1024
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"PRINTLAB_CATALOG_CACHE_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PRINTLAB_AUTO_MIGRATE" default:"false"`
	UseSQLite   bool `envconfig:"PRINTLAB_USE_SQLITE" default:"false"`
}
