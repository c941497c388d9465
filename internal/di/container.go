package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/PhotoShare/internal/adapter/storage/local"
	"github.com/GoArmGo/PhotoShare/internal/adapter/storage/minio"
	"github.com/GoArmGo/PhotoShare/internal/app"
	"github.com/GoArmGo/PhotoShare/internal/auth"
	"github.com/GoArmGo/PhotoShare/internal/config"
	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/database/client"
	"github.com/GoArmGo/PhotoShare/internal/database/postgres"
	"github.com/GoArmGo/PhotoShare/internal/database/storage"
	"github.com/GoArmGo/PhotoShare/internal/logger"
	"github.com/GoArmGo/PhotoShare/internal/messaging"
	"github.com/GoArmGo/PhotoShare/internal/metrics"
	"github.com/GoArmGo/PhotoShare/internal/rabbitmq"
	"github.com/GoArmGo/PhotoShare/internal/snapshot"
	"github.com/GoArmGo/PhotoShare/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
// При ошибке уже открытые ресурсы закрываются.
func BuildApp(ctx context.Context, mode string) (application *app.App, err error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Mode:   mode,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	var c app.Components
	defer func() {
		if err != nil {
			for i := len(c.Closers) - 1; i >= 0; i-- {
				_ = c.Closers[i]()
			}
		}
	}()

	// 2. Identity Store
	identity, err := buildIdentityStore(cfg, slogger, &c)
	if err != nil {
		return nil, err
	}

	// 3. Blob Store
	c.FileStorage, err = buildFileStorage(ctx, cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 4. RabbitMQ: без RABBITMQ_URL события только логируются
	if cfg.RabbitMQ.URL != "" {
		rabbitMQClient, err := rabbitmq.NewClient(cfg.RabbitMQ, slogger)
		if err != nil {
			return nil, err
		}
		c.Publisher = rabbitMQClient
		c.Consumer = rabbitMQClient
		c.Closers = append(c.Closers, func() error { rabbitMQClient.Close(); return nil })
	} else {
		slogger.Warn("RABBITMQ_URL is empty, activity events are disabled")
		c.Publisher = messaging.NewNopPublisher(slogger)
	}

	// 5. Рабочий набор и фикстура
	c.Fixture, err = snapshot.LoadFixture(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("загрузка фикстуры: %w", err)
	}
	c.Store = snapshot.New(slogger)

	// 6. Session Guard и бизнес-логика
	c.Guard = auth.NewGuard(identity, auth.NewSessionStore(cfg.SessionTTL), slogger)
	c.Gallery = usecase.NewGalleryUseCase(c.Store, c.Store, slogger)
	c.Photos = usecase.NewPhotoUseCase(c.Store, c.Store, identity, c.FileStorage, c.Publisher, slogger)
	c.Users = usecase.NewUserUseCase(identity, c.Store, cfg.BcryptCost, slogger)

	// 7. Метрики и лимитер загрузок
	c.Metrics = metrics.New()
	c.Metrics.RegisterSessions(c.Guard.ActiveSessions)
	c.Metrics.RegisterSnapshot(c.Store.Stats)
	c.UploadLimiter = make(chan struct{}, cfg.UploadConcurrency)

	slogger.Info("all dependencies initialized",
		"identity_driver", cfg.IdentityDriver,
		"blob_backend", cfg.BlobBackend,
		"events", cfg.RabbitMQ.URL != "",
	)
	return app.NewApp(cfg, slogger, c), nil
}

func buildIdentityStore(cfg *config.Config, slogger *slog.Logger, c *app.Components) (ports.UserStorage, error) {
	switch cfg.IdentityDriver {
	case config.IdentityDriverGorm:
		gormClient, err := postgres.NewClient(cfg.DatabaseURL, slogger)
		if err != nil {
			return nil, err
		}
		c.Closers = append(c.Closers, gormClient.Close)
		return postgres.NewGormUserStorage(gormClient.DB, slogger), nil
	default:
		dbClient, err := client.NewClient(cfg.DatabaseURL, slogger)
		if err != nil {
			return nil, err
		}
		c.Closers = append(c.Closers, dbClient.Close)
		return storage.NewUserStorage(dbClient.DB, slogger), nil
	}
}

func buildFileStorage(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (ports.FileStorage, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendMinio:
		return minio.NewMinioClient(ctx, cfg.Minio, slogger)
	default:
		return local.NewClient(cfg.ImagesDir, slogger)
	}
}
