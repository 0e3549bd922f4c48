package usecase

import (
	"context"
	"testing"

	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.repo, testConfig(), testLogger())

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pw",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.NotEmpty(t, resp.Token, "register logs the new account in")

	user, err := env.repo.User.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEqual(t, "s3cret-pw", user.PasswordHash, "password must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.repo, testConfig(), testLogger())

	req := &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pw",
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "other-pw",
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.Len(t, env.users.users, 1)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.repo, testConfig(), testLogger())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "bob",
		Email:    "not-an-email",
		Password: "s3cret-pw",
	})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
	assert.Empty(t, env.users.users)
}

func TestLogin(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.repo, testConfig(), testLogger())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pw",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pw",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	session, err := env.repo.Session.FindValidSession(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.NotNil(t, session)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.repo, testConfig(), testLogger())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pw",
	})
	require.NoError(t, err)

	_, unknownErr := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-pw",
	})
	_, wrongPwErr := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-pw",
	})

	assert.ErrorIs(t, unknownErr, repository.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPwErr, repository.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPwErr.Error(),
		"unknown email and wrong password must answer identically")
}

func TestLogout(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.repo, testConfig(), testLogger())

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pw",
	})
	require.NoError(t, err)

	err = svc.Logout(context.Background(), resp.Token)
	require.NoError(t, err)

	session, err := env.repo.Session.FindValidSession(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Nil(t, session, "revoked session must no longer resolve")
}

func TestAuthAuditTrail(t *testing.T) {
	env := newTestEnv()
	svc := NewAuthService(env.repo, testConfig(), testLogger())

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pw",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pw",
	})
	require.NoError(t, err)

	user, err := env.repo.User.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)

	entries, err := env.repo.Audit.FindByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	actions := []string{entries[0].Action, entries[1].Action}
	assert.ElementsMatch(t, []string{"account registered", "logged in"}, actions)
}
