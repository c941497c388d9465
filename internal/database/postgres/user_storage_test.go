package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var columns = []string{"id", "login_name", "password_hash", "first_name", "last_name", "location", "description", "occupation", "created_at"}

func newMockStorage(t *testing.T) (*GormUserStorage, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := Open(gormpg.New(gormpg.Config{Conn: sqlDB}))
	require.NoError(t, err)
	return NewGormUserStorage(db, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func TestGormUserStorage_FindUserByLoginName(t *testing.T) {
	s, mock := newMockStorage(t)
	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE login_name = \$1`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(id.String(), "turing", "h", "Alan", "Turing", "", "", "", time.Now()))

	u, err := s.FindUserByLoginName(context.Background(), "turing")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "turing", u.LoginName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserStorage_FindUserByID_NotFound(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := s.FindUserByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGormUserStorage_InsertUser(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectExec(`INSERT INTO "users"`).WillReturnResult(sqlmock.NewResult(0, 1))

	u := &domain.User{LoginName: "turing", PasswordHash: "h", FirstName: "Alan", LastName: "Turing"}
	require.NoError(t, s.InsertUser(context.Background(), u))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserStorage_InsertUser_Duplicate(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectExec(`INSERT INTO "users"`).WillReturnError(gorm.ErrDuplicatedKey)

	err := s.InsertUser(context.Background(), &domain.User{LoginName: "turing"})
	assert.ErrorIs(t, err, domain.ErrDuplicateLogin)
}

func TestGormUserStorage_ListUsers(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectQuery(`SELECT \* FROM "users" ORDER BY created_at, id`).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.NewString(), "lovelace", "h", "Ada", "Lovelace", "", "", "", time.Now()))

	users, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
