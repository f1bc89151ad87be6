package services

import (
	"context"
	"errors"

	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/franciscosanchezn/gin-shop-api/internal/repository"
	log "github.com/sirupsen/logrus"
)

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// RegisterInput holds the registration request fields
type RegisterInput struct {
	Email    string
	Password string
	Role     string
}

// LoginInput holds the login request fields
type LoginInput struct {
	Email    string
	Password string
}

// AuthService registers users and exchanges credentials for access tokens
type AuthService interface {
	// Register creates a new account with a hashed password
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	// Login verifies credentials and returns a signed access token
	Login(ctx context.Context, input LoginInput) (string, error)
}

type authService struct {
	users  repository.UserRepository
	tokens TokenIssuer
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(users repository.UserRepository, tokens TokenIssuer) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	logger := log.WithFields(log.Fields{"svc": "auth.register", "email": input.Email})

	_, err := s.users.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		logger.Info("Registration rejected, email already in use")
		return nil, newError(ErrConflict, "User with this email already exists").withCode(models.ErrUserExists)
	case !errors.Is(err, repository.ErrNotFound):
		logger.WithError(err).Error("Failed to look up user")
		return nil, newError(ErrInternal, "Error occurred while registering user")
	}

	if !models.IsValidRole(input.Role) {
		logger.WithField("role", input.Role).Info("Registration rejected, invalid role")
		return nil, newError(ErrConflict, "Invalid role provided")
	}

	user := &models.User{
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	}
	if err := user.HashPassword(); err != nil {
		logger.WithError(err).Error("Failed to hash password")
		return nil, newError(ErrInternal, "Error occurred while registering user")
	}

	if err := s.users.Insert(ctx, user); err != nil {
		// Lost a race with a concurrent registration for the same email
		if errors.Is(err, repository.ErrDuplicate) {
			logger.Info("Registration rejected, email already in use")
			return nil, newError(ErrConflict, "User with this email already exists").withCode(models.ErrUserExists)
		}
		logger.WithError(err).Error("Failed to persist user")
		return nil, newError(ErrInternal, "Error occurred while registering user")
	}

	logger.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (string, error) {
	logger := log.WithFields(log.Fields{"svc": "auth.login", "email": input.Email})

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Login failed, unknown email")
			return "", newError(ErrUnauthorized, "Invalid credentials").withCode(models.ErrInvalidCredentials)
		}
		logger.WithError(err).Error("Failed to look up user")
		return "", newError(ErrInternal, "Error occurred while logging in")
	}

	if !user.CheckPassword(input.Password) {
		logger.Info("Login failed, password mismatch")
		return "", newError(ErrUnauthorized, "Invalid credentials").withCode(models.ErrInvalidCredentials)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		logger.WithError(err).Error("Failed to sign access token")
		return "", newError(ErrInternal, "Error occurred while logging in")
	}

	logger.WithField("user_id", user.ID).Debug("Access token issued")
	return token, nil
}
