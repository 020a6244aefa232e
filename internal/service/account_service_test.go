package service

import (
	"context"
	"strings"
	"testing"

	"peached/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountServiceUpdateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("normalizes and saves", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var saved *models.User
		repo.updateFn = func(_ context.Context, u *models.User) error { saved = u; return nil }
		svc := NewAccountService(repo, noopWordRepo())

		user := &models.User{ID: 1, Name: "Old", Bio: "old bio"}
		changes, err := svc.UpdateProfile(ctx, user, ProfileUpdate{Name: "  New\nName ", URL: "ada.dev"})
		require.NoError(t, err)
		assert.Equal(t, &ProfileChanges{Name: "NewName", URL: "http://ada.dev"}, changes)
		require.NotNil(t, saved)
		assert.Equal(t, "NewName", saved.Name)
		assert.Equal(t, "old bio", saved.Bio, "absent fields stay unchanged")
	})

	t.Run("rejects invalid fields without saving", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.updateFn = func(context.Context, *models.User) error {
			t.Fatal("update must not be called")
			return nil
		}
		svc := NewAccountService(repo, noopWordRepo())

		_, err := svc.UpdateProfile(ctx, &models.User{}, ProfileUpdate{Name: strings.Repeat("n", 51)})
		requireCode(t, err, models.CodeValidation)
		_, err = svc.UpdateProfile(ctx, &models.User{}, ProfileUpdate{Bio: strings.Repeat("b", 150)})
		requireCode(t, err, models.CodeValidation)
		_, err = svc.UpdateProfile(ctx, &models.User{}, ProfileUpdate{Name: "   "})
		requireCode(t, err, models.CodeValidation)

		changes, err := svc.UpdateProfile(ctx, &models.User{}, ProfileUpdate{})
		require.NoError(t, err)
		assert.Equal(t, &ProfileChanges{}, changes)
	})
}

func TestAccountServiceChangeUsername(t *testing.T) {
	t.Parallel()
	repo := noopUserRepo()
	repo.updateFn = func(_ context.Context, u *models.User) error {
		if u.Username == "taken" {
			return models.NewConflictError("username unavailable")
		}
		return nil
	}
	svc := NewAccountService(repo, noopWordRepo())
	ctx := context.Background()

	user := &models.User{ID: 1, Username: "ada"}
	require.NoError(t, svc.ChangeUsername(ctx, user, " ada_l "))
	assert.Equal(t, "ada_l", user.Username)

	requireCode(t, svc.ChangeUsername(ctx, user, "taken"), models.CodeConflict)
	requireCode(t, svc.ChangeUsername(ctx, user, "bad name!"), models.CodeValidation)
}

func TestAccountServiceAvailability(t *testing.T) {
	t.Parallel()
	repo := noopUserRepo()
	repo.usernameExistsFn = func(_ context.Context, u string) (bool, error) { return u == "ada", nil }
	repo.emailExistsFn = func(_ context.Context, e string) (bool, error) { return e == "ada@x.io", nil }
	svc := NewAccountService(repo, noopWordRepo())
	ctx := context.Background()

	assert.NoError(t, svc.UsernameAvailable(ctx, "bob"))
	appErr := requireCode(t, svc.UsernameAvailable(ctx, "ada"), models.CodeConflict)
	assert.Equal(t, "username unavailable", appErr.Message)
	assert.NoError(t, svc.EmailAvailable(ctx, "bob@x.io"))
	requireCode(t, svc.EmailAvailable(ctx, "ada@x.io"), models.CodeConflict)
}

func TestAccountServiceLookup(t *testing.T) {
	t.Parallel()
	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		switch username {
		case "ada":
			return &models.User{Name: "Ada", Bio: "math", Picture: "p.png", Email: "secret@x.io"}, nil
		case "gone":
			return &models.User{Deactivated: true}, nil
		}
		return nil, nil
	}
	svc := NewAccountService(repo, noopWordRepo())

	got, err := svc.Lookup(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, &models.PublicProfile{Name: "Ada", Picture: "p.png", Bio: "math"}, got)

	_, err = svc.Lookup(context.Background(), "gone")
	requireCode(t, err, models.CodeNotFound)
	_, err = svc.Lookup(context.Background(), "nobody")
	requireCode(t, err, models.CodeNotFound)
}

func TestAccountServiceBlockedWords(t *testing.T) {
	t.Parallel()
	words := noopWordRepo()
	words.removeFn = func(_ context.Context, _ uint, word string) (bool, error) { return word == "known", nil }
	svc := NewAccountService(noopUserRepo(), words)
	ctx := context.Background()

	requireCode(t, svc.AddBlockedWord(ctx, 1, ""), models.CodeValidation)
	assert.NoError(t, svc.AddBlockedWord(ctx, 1, "spoiler"))

	assert.NoError(t, svc.RemoveBlockedWord(ctx, 1, "known"))
	appErr := requireCode(t, svc.RemoveBlockedWord(ctx, 1, "unknown"), models.CodeValidation)
	assert.Equal(t, "word not in blocked words list", appErr.Message)
	requireCode(t, svc.RemoveBlockedWord(ctx, 1, ""), models.CodeValidation)
}
