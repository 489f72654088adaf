package service

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lianruiying/Language-Tutor/internal/apperrors"
	"github.com/lianruiying/Language-Tutor/internal/auth"
	"github.com/lianruiying/Language-Tutor/internal/models"
	"github.com/lianruiying/Language-Tutor/internal/storage"
	"github.com/lianruiying/Language-Tutor/internal/storage/storagetest"
)

type fixture struct {
	store    *storage.Store
	users    *UserService
	learning *LearningService
	hook     *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	store := storagetest.NewStore(t)
	return &fixture{
		store:    store,
		users:    NewUserService(store, log),
		learning: NewLearningService(store, log),
		hook:     hook,
	}
}

func (f *fixture) register(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), models.UserCreate{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }

func TestCreate(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "alice")

	assert.NotZero(t, u.ID)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsSuperuser)
	assert.NotEqual(t, "password123", u.HashedPassword)
	assert.True(t, auth.VerifyPassword("password123", u.HashedPassword))

	entry := f.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "user created", entry.Message)
	assert.Equal(t, u.ID, entry.Data["user_id"])
}

func TestCreate_DuplicateUsername(t *testing.T) {
	f := newFixture(t)
	f.register(t, "bob")

	_, err := f.users.Create(context.Background(), models.UserCreate{
		Username: "bob", Email: "bob2@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestCreate_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "carol")

	_, err := f.users.Create(context.Background(), models.UserCreate{
		Username: "carol2", Email: "carol@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestCreate_Invalid(t *testing.T) {
	f := newFixture(t)
	_, err := f.users.Create(context.Background(), models.UserCreate{Username: "  ", Email: "x", Password: "1"})
	require.Error(t, err)
	appErr := apperrors.From(err)
	assert.Equal(t, apperrors.KindBadRequest, appErr.Kind)
	assert.Contains(t, appErr.Fields, "username")
	assert.Contains(t, appErr.Fields, "email")
	assert.Contains(t, appErr.Fields, "password")
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "dave")

	got, err := f.users.Authenticate(ctx, "dave", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// earlier successes never let a wrong password through
	for i := 0; i < 3; i++ {
		_, err = f.users.Authenticate(ctx, "dave", "password123")
		require.NoError(t, err)
		_, err = f.users.Authenticate(ctx, "dave", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrIncorrectCredentials)
	}

	_, err = f.users.Authenticate(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, apperrors.ErrIncorrectCredentials)
}

func TestAuthenticate_Inactive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "erin")

	_, err := f.users.Update(ctx, u, models.UserUpdate{IsActive: ptr(false)})
	require.NoError(t, err)

	_, err = f.users.Authenticate(ctx, "erin", "password123")
	assert.ErrorIs(t, err, apperrors.ErrInactiveUser)

	_, err = f.users.Authenticate(ctx, "erin", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrIncorrectCredentials)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "frank")
	f.register(t, "gina")
	oldHash := u.HashedPassword

	_, err := f.users.Update(ctx, u, models.UserUpdate{Username: ptr("gina")})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)
	assert.Equal(t, "frank", u.Username, "failed update leaves the user untouched")

	_, err = f.users.Update(ctx, u, models.UserUpdate{Email: ptr("gina@example.com")})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)

	updated, err := f.users.Update(ctx, u, models.UserUpdate{
		Username: ptr("franky"),
		Password: ptr("newpassword"),
		Avatar:   ptr("https://cdn.example.com/f.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "franky", updated.Username)
	assert.NotEqual(t, oldHash, updated.HashedPassword)

	_, err = f.users.Authenticate(ctx, "franky", "newpassword")
	require.NoError(t, err)
	_, err = f.users.Authenticate(ctx, "franky", "password123")
	assert.ErrorIs(t, err, apperrors.ErrIncorrectCredentials)

	stored, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/f.png", stored.Avatar)

	// keeping your own email is not a conflict
	_, err = f.users.Update(ctx, u, models.UserUpdate{Email: ptr("frank@example.com")})
	assert.NoError(t, err)
}

func TestGetters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "hank")

	byName, err := f.users.GetByUsername(ctx, "hank")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEmail, err := f.users.GetByEmail(ctx, "hank@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = f.users.GetByID(ctx, 12345)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, name := range []string{"u1", "u2", "u3"} {
		f.register(t, name)
	}

	users, err := f.users.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	users, err = f.users.List(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u3", users[0].Username)

	_, err = f.users.List(ctx, -1, 10)
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadRequest))
	_, err = f.users.List(ctx, 0, 5000)
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadRequest))
}

func TestProfile_Empty(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "ivy")

	p, err := f.users.GetProfile(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, "ivy", p.Username)
	assert.Empty(t, p.LearningLanguages)
	assert.NotNil(t, p.LearningLanguages)
	assert.Empty(t, p.Level)
	assert.Zero(t, p.StudyTime)
}

func TestUpdateProfile_ReplacesLanguages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "jack")

	p, err := f.users.UpdateProfile(ctx, u, models.ProfileUpdate{
		LearningLanguages: []string{"english", "french", "english", " "},
		Level:             map[string]string{"english": "b2"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"english", "french"}, p.LearningLanguages)
	assert.Equal(t, map[string]string{"english": "B2", "french": "A1"}, p.Level)

	p, err = f.users.UpdateProfile(ctx, u, models.ProfileUpdate{
		LearningLanguages: []string{"japanese"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"japanese"}, p.LearningLanguages)
	assert.Equal(t, map[string]string{"japanese": "A1"}, p.Level)

	// level map alone adjusts existing languages only
	p, err = f.users.UpdateProfile(ctx, u, models.ProfileUpdate{
		Level: map[string]string{"japanese": "C1", "german": "B1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"japanese"}, p.LearningLanguages)
	assert.Equal(t, "C1", p.Level["japanese"])

	// empty list clears the set
	p, err = f.users.UpdateProfile(ctx, u, models.ProfileUpdate{LearningLanguages: []string{}})
	require.NoError(t, err)
	assert.Empty(t, p.LearningLanguages)

	_, err = f.store.GetStatistics(ctx, u.ID)
	assert.NoError(t, err, "statistics row is created on first profile update")
}

func TestUpdateProfile_InvalidLevelChangesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "kate")

	_, err := f.users.UpdateProfile(ctx, u, models.ProfileUpdate{
		Avatar:            ptr("a.png"),
		LearningLanguages: []string{"english"},
		Level:             map[string]string{"english": "Z9"},
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadRequest))

	p, err := f.users.GetProfile(ctx, u)
	require.NoError(t, err)
	assert.Empty(t, p.LearningLanguages)
	assert.Empty(t, p.Avatar)
}

func TestUpdateProfile_ScalarsAndConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "leo")
	f.register(t, "mia")

	_, err := f.users.UpdateProfile(ctx, u, models.ProfileUpdate{
		Username:          ptr("mia"),
		LearningLanguages: []string{"english"},
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)

	p, err := f.users.GetProfile(ctx, u)
	require.NoError(t, err)
	assert.Empty(t, p.LearningLanguages, "conflict rolls back the language change")

	p, err = f.users.UpdateProfile(ctx, u, models.ProfileUpdate{
		Username: ptr("leon"),
		Email:    ptr("leon@example.com"),
		Avatar:   ptr("https://cdn.example.com/leon.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "leon", p.Username)
	assert.Equal(t, "leon@example.com", p.Email)
	assert.Equal(t, "leon", u.Username)
}

func TestLearning_RecordActivity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "nina")

	entry, err := f.learning.RecordActivity(ctx, u, models.ActivityCreate{
		ActivityType: "reading", Title: "Le Petit Prince", Language: "french", Level: "a2", Duration: 12.5,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LevelA2, entry.Level)

	_, err = f.learning.RecordActivity(ctx, u, models.ActivityCreate{
		ActivityType: "listening", Title: "Podcast", Language: "french", Duration: 7.5,
	})
	require.NoError(t, err)

	p, err := f.users.GetProfile(ctx, u)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, p.StudyTime, 0.001)
	assert.Equal(t, 1, p.ArticlesRead)

	_, err = f.learning.RecordActivity(ctx, u, models.ActivityCreate{
		ActivityType: "reading", Title: "x", Language: "french", Level: "Q1",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadRequest))

	_, err = f.learning.RecordActivity(ctx, u, models.ActivityCreate{Title: "x", Language: "french"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadRequest))
}

func TestLearning_RecentHistoryLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "otto")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 15; i++ {
		require.NoError(t, f.store.CreateHistory(ctx, &models.UserLearningHistory{
			UserID: u.ID, ActivityType: "quiz", Title: "q", Language: "english",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := f.learning.RecentHistory(ctx, u, 0)
	require.NoError(t, err)
	require.Len(t, entries, HistoryLimit)
	assert.True(t, entries[0].CreatedAt.After(entries[len(entries)-1].CreatedAt))
}

func TestLearning_Words(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "pia")

	_, err := f.learning.AddWord(ctx, u, models.WordCreate{Word: "hola", Translation: "你好", Language: "spanish"})
	require.NoError(t, err)
	_, err = f.learning.AddWord(ctx, u, models.WordCreate{Word: "gato", Translation: "猫", Language: "spanish", MasteryLevel: 3})
	require.NoError(t, err)

	_, err = f.learning.AddWord(ctx, u, models.WordCreate{Word: "x", Translation: "y", Language: "spanish", MasteryLevel: 9})
	assert.True(t, apperrors.IsKind(err, apperrors.KindBadRequest))

	words, err := f.learning.ListWords(ctx, u, "spanish")
	require.NoError(t, err)
	assert.Len(t, words, 2)

	p, err := f.users.GetProfile(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, 2, p.WordsLearned)
}
