package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	IdentityDriverSQLX = "sqlx"
	IdentityDriverGorm = "gorm"

	BlobBackendLocal = "local"
	BlobBackendMinio = "minio"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort     string        `env:"SERVER_PORT" envDefault:"8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	DatabaseURL    string `env:"DATABASE_URL,required"`
	IdentityDriver string `env:"IDENTITY_DRIVER" envDefault:"sqlx"`

	SessionCookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"photoshare_session"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionSecure     bool          `env:"SESSION_COOKIE_SECURE"`
	BcryptCost        int           `env:"BCRYPT_COST" envDefault:"10"`

	// Пустой SEED_FILE: встроенная фикстура.
	SeedFile     string `env:"SEED_FILE"`
	SeedPassword string `env:"SEED_PASSWORD" envDefault:"weak"`

	BlobBackend       string `env:"BLOB_BACKEND" envDefault:"local"`
	ImagesDir         string `env:"IMAGES_DIR" envDefault:"images"`
	UploadMaxBytes    int64  `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`
	UploadConcurrency int    `env:"UPLOAD_CONCURRENCY" envDefault:"5"`

	// Настройки для MinIO, обязательны только при BLOB_BACKEND=minio
	Minio MinioConfig

	// Пустой RABBITMQ_URL отключает события активности
	RabbitMQ RabbitMQConfig
}

type MinioConfig struct {
	Endpoint        string `env:"MINIO_ENDPOINT"`
	AccessKeyID     string `env:"MINIO_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"MINIO_SECRET_ACCESS_KEY"`
	UseSSL          bool   `env:"MINIO_USE_SSL"`
	BucketName      string `env:"MINIO_BUCKET_NAME"`
	Region          string `env:"MINIO_REGION" envDefault:"us-east-1"`
}

type RabbitMQConfig struct {
	URL       string `env:"RABBITMQ_URL"`
	QueueName string `env:"RABBITMQ_QUEUE_NAME" envDefault:"photoshare_activity"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
// В режиме разработки пытается загрузить .env файл.
func LoadConfig() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга конфигурации из окружения: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет зависимости между полями.
func (c *Config) Validate() error {
	var errs []error

	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL must not be empty"))
	}
	switch c.IdentityDriver {
	case IdentityDriverSQLX, IdentityDriverGorm:
	default:
		errs = append(errs, fmt.Errorf("IDENTITY_DRIVER must be %q or %q, got %q", IdentityDriverSQLX, IdentityDriverGorm, c.IdentityDriver))
	}

	switch c.BlobBackend {
	case BlobBackendLocal:
		if c.ImagesDir == "" {
			errs = append(errs, errors.New("IMAGES_DIR is required for local blob backend"))
		}
	case BlobBackendMinio:
		required := map[string]string{
			"MINIO_ENDPOINT":          c.Minio.Endpoint,
			"MINIO_ACCESS_KEY_ID":     c.Minio.AccessKeyID,
			"MINIO_SECRET_ACCESS_KEY": c.Minio.SecretAccessKey,
			"MINIO_BUCKET_NAME":       c.Minio.BucketName,
		}
		for _, key := range []string{"MINIO_ENDPOINT", "MINIO_ACCESS_KEY_ID", "MINIO_SECRET_ACCESS_KEY", "MINIO_BUCKET_NAME"} {
			if required[key] == "" {
				errs = append(errs, fmt.Errorf("%s is required for minio blob backend", key))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("BLOB_BACKEND must be %q or %q, got %q", BlobBackendLocal, BlobBackendMinio, c.BlobBackend))
	}

	if c.SessionCookieName == "" {
		errs = append(errs, errors.New("SESSION_COOKIE_NAME must not be empty"))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, errors.New("SESSION_TTL must not be negative"))
	}
	if c.BcryptCost != 0 && (c.BcryptCost < 4 || c.BcryptCost > 31) {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost))
	}
	if c.UploadConcurrency <= 0 {
		errs = append(errs, errors.New("UPLOAD_CONCURRENCY must be positive"))
	}
	if c.UploadMaxBytes <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_BYTES must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("некорректная конфигурация: %w", errors.Join(errs...))
	}
	return nil
}
