// Package service contains the application's business logic, orchestrating
// policy decisions, repositories, and file storage.
package service

import (
	"context"
	"fmt"
	"time"

	"blackbook/internal/config"
	"blackbook/internal/models"
	"blackbook/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService hashes credentials and issues/verifies session tokens.
type AuthService struct {
	userRepo repository.UserRepository
	secret   []byte
	lifetime time.Duration
}

// NewAuthService creates an AuthService from configuration.
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secret:   []byte(cfg.JWTSecret),
		lifetime: cfg.TokenLifetime(),
	}
}

// HashPassword hashes a password with bcrypt. Each call salts independently,
// so two hashes of the same password differ; VerifyPassword is the only
// valid comparison path.
func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches the stored hash. It never
// errors on malformed input; any mismatch or garbage hash yields false.
func (s *AuthService) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login exchanges credentials for a session token. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	if user == nil || !s.VerifyPassword(password, user.HashedPassword) {
		return nil, "", models.NewUnauthorizedError("Incorrect username or password")
	}

	token, err := s.IssueToken(user.Username)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// IssueToken signs a token for the subject with the configured lifetime.
func (s *AuthService) IssueToken(subject string) (string, error) {
	return s.IssueTokenWithTTL(subject, s.lifetime)
}

// IssueTokenWithTTL signs a token for the subject expiring after ttl.
func (s *AuthService) IssueTokenWithTTL(subject string, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken validates signature and expiry and returns the subject
// username. Any failure (bad signature, wrong method, malformed payload,
// missing subject, expiry) yields an Unauthorized error; no claim of a token
// that fails signature verification is trusted.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", models.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", models.NewUnauthorizedError("Invalid token claims")
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", models.NewUnauthorizedError("Invalid token structure - missing subject")
	}

	return subject, nil
}

// ResolveUser verifies the token and loads the referenced user. A valid
// token whose user no longer exists is an authentication failure.
func (s *AuthService) ResolveUser(ctx context.Context, tokenString string) (*models.User, error) {
	subject, err := s.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, subject)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Could not validate credentials")
	}
	return user, nil
}

// RequireActive rejects disabled accounts. The error kind is Forbidden so
// callers can distinguish it from a missing or invalid token.
func (s *AuthService) RequireActive(user *models.User) (*models.User, error) {
	if !user.IsActive {
		return nil, models.NewForbiddenError("Inactive user")
	}
	return user, nil
}
