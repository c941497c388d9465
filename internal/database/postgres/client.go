package postgres

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/database/client"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Client держит подключение GORM к Identity Store (IDENTITY_DRIVER=gorm).
type Client struct {
	DB     *gorm.DB
	logger *slog.Logger
}

// NewClient открывает подключение через GORM и применяет те же миграции, что и sqlx-клиент.
func NewClient(databaseURL string, logger *slog.Logger) (*Client, error) {
	start := time.Now()

	db, err := Open(gormpg.Open(databaseURL))
	if err != nil {
		logger.Error("failed to open GORM connection", "error", err)
		return nil, fmt.Errorf("ошибка открытия соединения с БД через GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("не удалось получить *sql.DB из GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("GORM connection established successfully",
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err := client.Migrate(sqlDB, logger); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &Client{DB: db, logger: logger}, nil
}

// Open создаёт *gorm.DB с настройками, общими для сервиса и тестов.
// Ошибки драйвера переводятся в gorm.ErrDuplicatedKey и т.п.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

func (c *Client) Close() error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		c.logger.Error("failed to close GORM connection", "error", err)
		return err
	}
	c.logger.Info("GORM connection closed")
	return nil
}
