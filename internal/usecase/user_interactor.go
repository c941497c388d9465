package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/auth"
	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/GoArmGo/PhotoShare/internal/snapshot"
	"github.com/google/uuid"
)

// userUseCase implements UserUseCase
type userUseCase struct {
	identity   ports.UserStorage
	users      ports.UserRepository
	bcryptCost int
	logger     *slog.Logger
	now        func() time.Time
}

// NewUserUseCase создает новый экземпляр UserUseCase
func NewUserUseCase(identity ports.UserStorage, users ports.UserRepository, bcryptCost int, logger *slog.Logger) UserUseCase {
	return &userUseCase{
		identity:   identity,
		users:      users,
		bcryptCost: bcryptCost,
		logger:     logger,
		now:        time.Now,
	}
}

// Register проверяет поля, отклоняет занятый login_name (с учётом регистра),
// сохраняет пользователя с хэшем пароля и добавляет его в рабочий набор.
func (uc *userUseCase) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	req.LoginName = strings.TrimSpace(req.LoginName)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		return nil, &domain.ValidationError{Field: "password", Message: "password is too long"}
	}

	existing, err := uc.identity.FindUserByLoginName(ctx, req.LoginName)
	if err == nil && existing != nil {
		return nil, domain.ErrDuplicateLogin
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("usecase: check login %q: %w", req.LoginName, err)
	}

	hash, err := auth.HashPassword(req.Password, uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("usecase: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		LoginName:    req.LoginName,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Location:     req.Location,
		Description:  req.Description,
		Occupation:   req.Occupation,
		CreatedAt:    uc.now(),
	}
	if err := uc.identity.InsertUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateLogin) {
			return nil, err
		}
		return nil, fmt.Errorf("usecase: insert user %q: %w", req.LoginName, err)
	}

	if _, err := uc.users.AddUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("usecase: mirror user %s: %w", user.ID, err)
	}

	uc.logger.Info("user registered", "user_id", user.ID, "login_name", user.LoginName)
	return user, nil
}

func (uc *userUseCase) SyncSnapshot(ctx context.Context) (int, error) {
	start := time.Now()

	users, err := uc.identity.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("usecase: list identity users: %w", err)
	}

	added := 0
	for _, u := range users {
		ok, err := uc.users.AddUser(ctx, u)
		if err != nil {
			return added, fmt.Errorf("usecase: add user %s: %w", u.ID, err)
		}
		if ok {
			added++
		}
	}

	uc.logger.Info("snapshot synced with identity store",
		"identity_users", len(users),
		"added", added,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return added, nil
}

func (uc *userUseCase) SeedIdentity(ctx context.Context, f *snapshot.Fixture, password string) (int, error) {
	if password == "" {
		return 0, domain.MissingField("password")
	}
	hash, err := auth.HashPassword(password, uc.bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("usecase: %w", err)
	}

	inserted := 0
	for _, fu := range f.Users {
		login := fu.Login()
		_, err := uc.identity.FindUserByLoginName(ctx, login)
		if err == nil {
			uc.logger.Info("seed user already present, skipping", "login_name", login)
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return inserted, fmt.Errorf("usecase: check seed login %q: %w", login, err)
		}

		u := fu.User()
		u.PasswordHash = hash
		u.CreatedAt = uc.now()
		if err := uc.identity.InsertUser(ctx, &u); err != nil {
			return inserted, fmt.Errorf("usecase: insert seed user %q: %w", login, err)
		}
		inserted++
	}

	uc.logger.Info("identity store seeded", "inserted", inserted, "fixture_users", len(f.Users))
	return inserted, nil
}
