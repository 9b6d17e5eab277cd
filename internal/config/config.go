package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	AccessSecret   string
	AccessTokenTTL time.Duration
}

type StorageConfig struct {
	// Backend is "local" or "s3".
	Backend       string
	LocalDir      string
	PublicBaseURL string
	S3            S3Config
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint and PathStyle support S3-compatible providers.
	Endpoint  string
	PathStyle bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Storage     StorageConfig
	Redis       RedisConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret:   v.GetString("JWT_ACCESS_SECRET"),
			AccessTokenTTL: v.GetDuration("JWT_ACCESS_TTL"),
		},
		Storage: StorageConfig{
			Backend:       v.GetString("STORAGE_BACKEND"),
			LocalDir:      v.GetString("STORAGE_LOCAL_DIR"),
			PublicBaseURL: v.GetString("STORAGE_PUBLIC_BASE_URL"),
			S3: S3Config{
				Region:          v.GetString("S3_REGION"),
				Bucket:          v.GetString("S3_BUCKET"),
				AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
				SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
				Endpoint:        v.GetString("S3_ENDPOINT"),
				PathStyle:       v.GetBool("S3_PATH_STYLE"),
			},
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Auth.AccessTokenTTL == 0 {
		cfg.Auth.AccessTokenTTL = 7 * 24 * time.Hour
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "local"
	}
	if cfg.Storage.LocalDir == "" {
		cfg.Storage.LocalDir = "./uploads"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Storage.Backend == "s3" {
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 storage backend")
		}
		if cfg.Storage.S3.Region == "" {
			return fmt.Errorf("S3_REGION is required for the s3 storage backend")
		}
	}
	return nil
}
