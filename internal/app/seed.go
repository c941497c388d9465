package app

import (
	"context"
	"fmt"
)

// runSeed заводит пользователей фикстуры в Identity Store и завершается.
func (a *App) runSeed(ctx context.Context) error {
	n, err := a.c.Users.SeedIdentity(ctx, a.c.Fixture, a.Config.SeedPassword)
	if err != nil {
		return fmt.Errorf("seed identity store: %w", err)
	}
	a.logger.Info("seed completed", "inserted", n)
	return nil
}
