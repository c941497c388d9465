package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/PhotoShare/internal/auth"
	"github.com/GoArmGo/PhotoShare/internal/config"
	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/metrics"
	"github.com/GoArmGo/PhotoShare/internal/snapshot"
	"github.com/GoArmGo/PhotoShare/internal/usecase"
)

const (
	ModeServer = "server"
	ModeWorker = "worker"
	ModeSeed   = "seed"
)

// Components — собранные зависимости приложения.
type Components struct {
	Guard         *auth.Guard
	Store         *snapshot.Store
	Fixture       *snapshot.Fixture
	Gallery       usecase.GalleryUseCase
	Photos        usecase.PhotoUseCase
	Users         usecase.UserUseCase
	FileStorage   ports.FileStorage
	Publisher     ports.ActivityPublisher
	Consumer      ports.ActivityConsumer // nil, если брокер не настроен
	Metrics       *metrics.Metrics
	UploadLimiter chan struct{}
	// Closers вызываются при завершении в обратном порядке
	Closers []func() error
}

type App struct {
	Config *config.Config
	logger *slog.Logger
	c      Components
}

func NewApp(cfg *config.Config, logger *slog.Logger, c Components) *App {
	return &App{Config: cfg, logger: logger, c: c}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает выбранный режим и блокируется до его завершения или сигнала.
func (a *App) Run(ctx context.Context, mode string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting", "mode", mode)

	var err error
	switch mode {
	case ModeServer:
		err = a.runServer(ctx)
	case ModeWorker:
		err = a.runWorker(ctx)
	case ModeSeed:
		err = a.runSeed(ctx)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server', 'worker' или 'seed')", mode)
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}
	if err != nil {
		return err
	}

	a.logger.Info("stopped gracefully", "mode", mode)
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	var errs []error
	for i := len(a.c.Closers) - 1; i >= 0; i-- {
		if err := a.c.Closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.c.Closers = nil
	return errors.Join(errs...)
}
