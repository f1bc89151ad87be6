package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification
var ErrInvalidToken = errors.New("invalid token")

// Claims is the access token payload
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a user id
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: subject %q is not a user id", ErrInvalidToken, c.Subject)
	}
	return uint(id), nil
}

// TokenManager issues and verifies HMAC signed access tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	method jwt.SigningMethod
	now    func() time.Time
}

// NewTokenManager creates a TokenManager signing with secret; tokens expire after ttl
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		method: jwt.SigningMethodHS256,
		now:    time.Now,
	}
}

// Issue signs a token for user with subject, email and role claims
func (m *TokenManager) Issue(user *models.User) (string, error) {
	now := m.now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(m.method, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, expiry and role of tokenString and returns its claims
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		// Reject anything but HMAC to block algorithm confusion
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithTimeFunc(m.now),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	if !models.IsValidRole(claims.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	return &claims, nil
}
