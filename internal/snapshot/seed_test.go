package snapshot

import (
	"context"
	"strings"
	"testing"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixture_Embedded(t *testing.T) {
	f, err := LoadFixture("")
	require.NoError(t, err)
	assert.Len(t, f.Users, 6)
	assert.NotEmpty(t, f.Photos)
}

func TestLoadFixture_MissingFile(t *testing.T) {
	_, err := LoadFixture("/nonexistent/fixture.json")
	assert.Error(t, err)
}

func TestParseFixture_RejectsUnknownFields(t *testing.T) {
	_, err := ParseFixture(strings.NewReader(`{"users":[],"albums":[]}`))
	assert.Error(t, err)
}

func TestFixtureUser_Login(t *testing.T) {
	assert.Equal(t, "malcolm", FixtureUser{LastName: "Malcolm"}.Login())
	assert.Equal(t, "ian", FixtureUser{LastName: "Malcolm", LoginName: "ian"}.Login())
}

func TestStore_Load_ResolvesAuthors(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	f, err := LoadFixture("")
	require.NoError(t, err)
	require.NoError(t, s.Load(ctx, f))

	users, photos, comments := s.Stats()
	assert.Equal(t, 6, users)
	assert.Equal(t, len(f.Photos), photos)
	assert.Positive(t, comments)

	malcolm := uuid.MustParse("5f1a2b3c-0001-4000-8000-000000000001")
	got, err := s.PhotosOfUser(ctx, malcolm)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	require.NotEmpty(t, got[0].Comments)
	assert.Equal(t, "Ellen", got[0].Comments[0].User.FirstName)
	assert.Equal(t, "Ripley", got[0].Comments[0].User.LastName)
}

func TestStore_Load_UnknownCommentAuthor(t *testing.T) {
	s := newTestStore(t)
	ownerID := uuid.New()
	ghost := uuid.New()
	f := &Fixture{
		Users: []FixtureUser{{ID: ownerID, FirstName: "Ada", LastName: "Lovelace"}},
		Photos: []FixturePhoto{{
			ID:       uuid.New(),
			UserID:   ownerID,
			FileName: "a.jpg",
			Comments: []FixtureComment{{ID: uuid.New(), Comment: "boo", UserID: ghost}},
		}},
	}
	require.NoError(t, s.Load(context.Background(), f))

	photos, err := s.PhotosOfUser(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, domain.UnknownAuthor(ghost), photos[0].Comments[0].User)
}

func TestStore_Load_PhotoWithUnknownOwner(t *testing.T) {
	s := newTestStore(t)
	f := &Fixture{Photos: []FixturePhoto{{ID: uuid.New(), UserID: uuid.New()}}}
	err := s.Load(context.Background(), f)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
