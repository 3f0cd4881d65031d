package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Upload   UploadConfig
	Model    ModelConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Archive  ArchiveConfig
	Auth     AuthConfig
}

type AppConfig struct {
	AppName     string `validate:"required"`
	Environment string `validate:"required"`
	HTTPPort    string `validate:"required,numeric"`
}

type UploadConfig struct {
	Dir      string `validate:"required"`
	MaxBytes int64  `validate:"gt=0"`
}

type ModelConfig struct {
	Trees   int `validate:"min=1,max=1000"`
	Seed    uint64
	Workers int `validate:"min=1,max=64"`
}

// DatabaseConfig is optional; an empty DBHost disables persistence.
type DatabaseConfig struct {
	DBHost         string
	DBPort         string `validate:"required_with=DBHost"`
	DBName         string `validate:"required_with=DBHost"`
	DBUser         string `validate:"required_with=DBHost"`
	DBPassword     string
	DBSSLMode      string
	ConnectTimeout time.Duration
	PoolMaxConns   int32 `validate:"min=0"`
	MigrationsDir  string
}

func (c DatabaseConfig) Enabled() bool { return strings.TrimSpace(c.DBHost) != "" }

// RedisConfig is optional; an empty Host disables the result cache.
type RedisConfig struct {
	Host     string
	Port     string `validate:"required_with=Host"`
	Password string
	DB       int `validate:"min=0"`
	TTL      time.Duration
}

func (c RedisConfig) Enabled() bool { return strings.TrimSpace(c.Host) != "" }

// ArchiveConfig is optional; an empty Bucket disables archiving uploads.
type ArchiveConfig struct {
	Bucket          string
	Region          string `validate:"required_with=Bucket"`
	Endpoint        string `validate:"omitempty,url"`
	AccessKeyID     string `validate:"required_with=SecretAccessKey"`
	SecretAccessKey string `validate:"required_with=AccessKeyID"`
}

func (c ArchiveConfig) Enabled() bool { return strings.TrimSpace(c.Bucket) != "" }

type AuthConfig struct {
	AdminJWTSecret string `validate:"omitempty,min=16"`
	TokenTTL       time.Duration
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int64) int64 {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optUint := func(key string, def uint64) uint64 {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optSeconds := func(key string, def time.Duration) time.Duration {
		return time.Duration(optInt(key, int64(def/time.Second))) * time.Second
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Upload = UploadConfig{
		Dir:      opt("UPLOAD_DIR", "uploads"),
		MaxBytes: optInt("UPLOAD_MAX_BYTES", 10<<20),
	}

	cfg.Model = ModelConfig{
		Trees:   int(optInt("MODEL_TREES", 100)),
		Seed:    optUint("MODEL_SEED", 0),
		Workers: int(optInt("MODEL_WORKERS", 4)),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST", ""),
		DBPort:         opt("DB_PORT", "5432"),
		DBName:         opt("DB_NAME", ""),
		DBUser:         opt("DB_USER", ""),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBSSLMode:      opt("DB_SSL_MODE", "disable"),
		ConnectTimeout: optSeconds("DB_CONNECT_TIMEOUT_SECONDS", 5*time.Second),
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 0)),
		MigrationsDir:  opt("DB_MIGRATIONS_DIR", ""),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", ""),
		Port:     opt("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       int(optInt("REDIS_DB", 0)),
		TTL:      optSeconds("CACHE_TTL_SECONDS", 600*time.Second),
	}

	cfg.Archive = ArchiveConfig{
		Bucket:          opt("ARCHIVE_BUCKET", ""),
		Region:          opt("ARCHIVE_REGION", "auto"),
		Endpoint:        opt("ARCHIVE_ENDPOINT", ""),
		AccessKeyID:     opt("ARCHIVE_ACCESS_KEY_ID", ""),
		SecretAccessKey: os.Getenv("ARCHIVE_SECRET_ACCESS_KEY"),
	}

	cfg.Auth = AuthConfig{
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
		TokenTTL:       optSeconds("ADMIN_TOKEN_TTL_SECONDS", time.Hour),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(fields, ", "))
		}
		return err
	}
	return nil
}
