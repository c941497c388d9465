package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/handler"
)

const shutdownTimeout = 30 * time.Second

// runServer готовит рабочий набор и обслуживает HTTP API до отмены ctx.
func (a *App) runServer(ctx context.Context) error {
	if err := a.c.Store.Load(ctx, a.c.Fixture); err != nil {
		return fmt.Errorf("загрузка рабочего набора: %w", err)
	}
	if _, err := a.c.Users.SyncSnapshot(ctx); err != nil {
		return fmt.Errorf("синхронизация пользователей: %w", err)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Guard:          a.c.Guard,
		Gallery:        a.c.Gallery,
		Photos:         a.c.Photos,
		Users:          a.c.Users,
		FileStorage:    a.c.FileStorage,
		Metrics:        a.c.Metrics,
		Logger:         a.logger,
		CookieName:     a.Config.SessionCookieName,
		SessionTTL:     a.Config.SessionTTL,
		SecureCookie:   a.Config.SessionSecure,
		UploadLimiter:  a.c.UploadLimiter,
		UploadMaxBytes: a.Config.UploadMaxBytes,
		RequestTimeout: a.Config.RequestTimeout,
	})

	return a.serve(ctx, router)
}

// serve запускает http.Server и выполняет graceful shutdown по отмене ctx.
func (a *App) serve(ctx context.Context, h http.Handler) error {
	serverAddr := fmt.Sprintf(":%s", a.Config.ServerPort)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка при запуске сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutdown signal received, stopping http server")
	ctxServer, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	a.logger.Info("http server stopped")
	return nil
}
