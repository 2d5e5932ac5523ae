package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when a token fails signature or structural
	// validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token is well formed but past its
	// expiry.
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the JWT payload carried by every access token.
type Claims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HMAC-SHA-512 signed access tokens. The
// zero value is not usable; construct with NewTokenService.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service signing with the given secret.
// Tokens expire after ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token for the given account.
func (s *TokenService) Issue(userID int64, username, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token signature and expiry and returns its claims.
func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Validate reports whether the token is well formed, correctly signed and
// not expired. It never returns an error; any failure means false.
func (s *TokenService) Validate(tokenString string) bool {
	_, err := s.Parse(tokenString)
	return err == nil
}

// UserIDOf extracts the account ID from a token without further checks
// beyond Parse.
func (s *TokenService) UserIDOf(tokenString string) (int64, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// UsernameOf extracts the username from a token.
func (s *TokenService) UsernameOf(tokenString string) (string, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

// RoleOf extracts the role from a token.
func (s *TokenService) RoleOf(tokenString string) (string, error) {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}
