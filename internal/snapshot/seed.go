package snapshot

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
)

//go:embed fixtures/photoapp.json
var fixtures embed.FS

const defaultFixture = "fixtures/photoapp.json"

// Fixture — исходные данные рабочего набора, загружаемые при старте.
type Fixture struct {
	Users  []FixtureUser  `json:"users"`
	Photos []FixturePhoto `json:"photos"`
}

// FixtureUser — пользователь из фикстуры. LoginName может отсутствовать.
type FixtureUser struct {
	ID          uuid.UUID `json:"id"`
	LoginName   string    `json:"login_name"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Occupation  string    `json:"occupation"`
}

// Login возвращает login_name пользователя; по умолчанию это фамилия в нижнем регистре.
func (u FixtureUser) Login() string {
	if u.LoginName != "" {
		return u.LoginName
	}
	return strings.ToLower(u.LastName)
}

// User преобразует запись фикстуры в доменного пользователя без секрета.
func (u FixtureUser) User() domain.User {
	return domain.User{
		ID:          u.ID,
		LoginName:   u.Login(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Location:    u.Location,
		Description: u.Description,
		Occupation:  u.Occupation,
	}
}

// FixturePhoto — фото из фикстуры. Комментарии ссылаются на автора по id.
type FixturePhoto struct {
	ID       uuid.UUID        `json:"id"`
	UserID   uuid.UUID        `json:"user_id"`
	FileName string           `json:"file_name"`
	DateTime time.Time        `json:"date_time"`
	Comments []FixtureComment `json:"comments"`
}

// FixtureComment — комментарий из фикстуры.
type FixtureComment struct {
	ID       uuid.UUID `json:"id"`
	Comment  string    `json:"comment"`
	DateTime time.Time `json:"date_time"`
	UserID   uuid.UUID `json:"user_id"`
}

// ParseFixture декодирует фикстуру из JSON.
func ParseFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// LoadFixture читает фикстуру из файла path или встроенную, если path пуст.
func LoadFixture(path string) (*Fixture, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	if path == "" {
		rc, err = fixtures.Open(defaultFixture)
	} else {
		rc, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer rc.Close()

	return ParseFixture(rc)
}

// Load заполняет Store данными фикстуры. Авторы комментариев разрешаются
// по пользователям фикстуры в момент загрузки; неизвестный автор заменяется заглушкой.
func (s *Store) Load(ctx context.Context, f *Fixture) error {
	authors := make(map[uuid.UUID]domain.CommentAuthor, len(f.Users))
	for _, fu := range f.Users {
		u := fu.User()
		if _, err := s.AddUser(ctx, u); err != nil {
			return fmt.Errorf("load user %s: %w", fu.ID, err)
		}
		authors[u.ID] = u.Author()
	}

	comments := 0
	for _, fp := range f.Photos {
		photo := domain.Photo{
			ID:       fp.ID,
			UserID:   fp.UserID,
			FileName: fp.FileName,
			DateTime: fp.DateTime,
			Comments: make([]domain.Comment, 0, len(fp.Comments)),
		}
		for _, fc := range fp.Comments {
			author, ok := authors[fc.UserID]
			if !ok {
				author = domain.UnknownAuthor(fc.UserID)
			}
			photo.Comments = append(photo.Comments, domain.Comment{
				ID:       fc.ID,
				Comment:  fc.Comment,
				DateTime: fc.DateTime,
				User:     author,
			})
		}
		if err := s.AddPhoto(ctx, photo); err != nil {
			return fmt.Errorf("load photo %s: %w", fp.ID, err)
		}
		comments += len(photo.Comments)
	}

	s.logger.Info("snapshot loaded",
		"users", len(f.Users),
		"photos", len(f.Photos),
		"comments", comments,
	)
	return nil
}
