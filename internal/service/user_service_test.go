package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserHashesPassword(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "alice")

	assert.NotEqual(t, "secret123", u.Password)
	assert.NotEmpty(t, u.ID)
}

func TestCreateUserConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.user(t, "alice")

	_, err := env.users.CreateUser(ctx, CreateUserDTO{
		Username: "other", FirstName: "A", LastName: "B", Email: "ALICE@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "Email already exists")

	_, err = env.users.CreateUser(ctx, CreateUserDTO{
		Username: "alice", FirstName: "A", LastName: "B", Email: "new@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "Username already exists")
}

func TestUpdateUserChecksConflictsAgainstOthersOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")
	env.user(t, "bob")

	same := "alice@example.com"
	_, err := env.users.UpdateUser(ctx, alice.ID, UpdateUserDTO{Email: &same})
	assert.NoError(t, err)

	taken := "bob"
	_, err = env.users.UpdateUser(ctx, alice.ID, UpdateUserDTO{Username: &taken})
	assert.ErrorIs(t, err, ErrConflict)

	first := "Alicia"
	updated, err := env.users.UpdateUser(ctx, alice.ID, UpdateUserDTO{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "alice", updated.Username)

	_, err = env.users.UpdateUser(ctx, "missing", UpdateUserDTO{FirstName: &first})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoginAndAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")

	res, err := env.users.Login(ctx, LoginDTO{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, res.User.ID)
	require.NotEmpty(t, res.Token)

	userID, err := env.users.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, userID)

	require.NoError(t, env.users.Logout(ctx, res.Token))
	_, err = env.users.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.user(t, "alice")

	_, err := env.users.Login(ctx, LoginDTO{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.EqualError(t, err, "Invalid credentials")

	_, err = env.users.Login(ctx, LoginDTO{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSocialLoginFindsOrCreates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.user(t, "carol")

	user, err := env.users.SocialLogin(ctx, SocialLoginDTO{Provider: "google", Email: "carol@gmail.com", Name: "Carol Ann Smith"})
	require.NoError(t, err)
	assert.Equal(t, "carol1", user.Username)
	assert.Equal(t, "Carol", user.FirstName)
	assert.Equal(t, "Ann Smith", user.LastName)

	again, err := env.users.SocialLogin(ctx, SocialLoginDTO{Provider: "google", Email: "carol@gmail.com"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	count, err := env.users.GetUsersCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestLinkTelegramMovesLink(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.user(t, "alice")
	env.user(t, "bob")

	_, err := env.users.LinkTelegram(ctx, "alice@example.com", "secret123", 42)
	require.NoError(t, err)
	_, err = env.users.LinkTelegram(ctx, "bob@example.com", "secret123", 42)
	require.NoError(t, err)

	linked, err := env.users.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "bob", linked.Username)

	// relinking the same account keeps the link
	_, err = env.users.LinkTelegram(ctx, "bob@example.com", "secret123", 42)
	require.NoError(t, err)
	linked, err = env.users.GetUserByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "bob", linked.Username)
}

func TestLinkTelegramNeedsPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.user(t, "alice")

	_, err := env.users.LinkTelegram(ctx, "alice@example.com", "guess", 42)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = env.users.LinkTelegram(ctx, "nobody@example.com", "secret123", 7)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.users.GetUserByTelegramID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.user(t, "alice")

	require.NoError(t, env.users.DeleteUser(ctx, alice.ID))
	assert.ErrorIs(t, env.users.DeleteUser(ctx, alice.ID), ErrNotFound)

	// email is free again after a hard delete
	env.user(t, "alice")
}
