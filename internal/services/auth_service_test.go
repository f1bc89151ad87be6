package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-shop-api/internal/auth"
	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/franciscosanchezn/gin-shop-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingIssuer struct{}

func (failingIssuer) Issue(*models.User) (string, error) {
	return "", errors.New("key unavailable")
}

func newTestAuthService(t *testing.T) (AuthService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-jwt-secret-key-32-characters", time.Hour)
	return NewAuthService(repository.NewUserRepository(setupTestDB(t)), tokens), tokens
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t)

	user, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "pw", Role: "user"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "pw", user.Password)
	assert.True(t, user.CheckPassword("pw"))

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "other", Role: "admin"})
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, "User with this email already exists", Message(err))
	})

	t.Run("unknown role is a conflict", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{Email: "new@b.com", Password: "pw", Role: "superuser"})
		assert.ErrorIs(t, err, ErrConflict)
		assert.Equal(t, "Invalid role provided", Message(err))
	})
}

func TestAuthServiceRegisterStoreFailures(t *testing.T) {
	ctx := context.Background()
	input := RegisterInput{Email: "a@b.com", Password: "pw", Role: "admin"}

	t.Run("lookup failure", func(t *testing.T) {
		repo := &failingUserRepo{findErr: errStoreDown}
		_, err := NewAuthService(repo, failingIssuer{}).Register(ctx, input)

		assert.ErrorIs(t, err, ErrInternal)
		assert.NotContains(t, Message(err), "connection refused")
		assert.Zero(t, repo.inserted)
	})

	t.Run("write failure", func(t *testing.T) {
		repo := &failingUserRepo{findErr: repository.ErrNotFound, insertErr: errStoreDown}
		_, err := NewAuthService(repo, failingIssuer{}).Register(ctx, input)

		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, 1, repo.inserted)
	})

	t.Run("unique violation on write", func(t *testing.T) {
		repo := &failingUserRepo{findErr: repository.ErrNotFound, insertErr: repository.ErrDuplicate}
		_, err := NewAuthService(repo, failingIssuer{}).Register(ctx, input)

		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newTestAuthService(t)

	user, err := svc.Register(ctx, RegisterInput{Email: "admin@b.com", Password: "s3cret", Role: "admin"})
	require.NoError(t, err)

	token, err := svc.Login(ctx, LoginInput{Email: "admin@b.com", Password: "s3cret"})
	require.NoError(t, err)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, "admin@b.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	testCases := []struct {
		name  string
		input LoginInput
	}{
		{name: "wrong password", input: LoginInput{Email: "admin@b.com", Password: "nope"}},
		{name: "unknown email", input: LoginInput{Email: "ghost@b.com", Password: "s3cret"}},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Login(ctx, tt.input)
			assert.Empty(t, token)
			assert.ErrorIs(t, err, ErrUnauthorized)
			assert.NotErrorIs(t, err, ErrInternal)
			assert.Equal(t, "Invalid credentials", Message(err))
		})
	}
}

func TestAuthServiceLoginFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("lookup failure", func(t *testing.T) {
		svc := NewAuthService(&failingUserRepo{findErr: errStoreDown}, failingIssuer{})
		_, err := svc.Login(ctx, LoginInput{Email: "a@b.com", Password: "pw"})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("signing failure", func(t *testing.T) {
		users := repository.NewUserRepository(setupTestDB(t))
		user := &models.User{Email: "a@b.com", Password: "pw", Role: models.RoleUser}
		require.NoError(t, user.HashPassword())
		require.NoError(t, users.Insert(ctx, user))

		_, err := NewAuthService(users, failingIssuer{}).Login(ctx, LoginInput{Email: "a@b.com", Password: "pw"})
		assert.ErrorIs(t, err, ErrInternal)
		assert.Equal(t, "Error occurred while logging in", Message(err))
	})
}

func TestMessageHidesNonDomainErrors(t *testing.T) {
	assert.Equal(t, "Internal server error", Message(errStoreDown))
	assert.Equal(t, "boom", Message(&Error{Kind: ErrInternal, Message: "boom"}))
}
