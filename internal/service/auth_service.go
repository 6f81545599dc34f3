package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"study_webapp/internal/domain"
	"study_webapp/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrWeakPassword       = errors.New("password must have at least 8 characters, one letter and one digit")
)

// ValidationError marks a bad registration field; the handler maps it to a
// 400 with the message as-is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// AuthService handles registration and login. Sessions are stateless JWTs;
// the service only deals with identity.
type AuthService struct {
	users *repository.UserRepository
	stats *repository.StatsRepository
}

func NewAuthService(users *repository.UserRepository, stats *repository.StatsRepository) *AuthService {
	return &AuthService{users: users, stats: stats}
}

// Register creates a user plus their stats row and returns both.
// Email is normalized to lowercase.
func (s *AuthService) Register(ctx context.Context, username, email, password, fullName string) (*domain.User, *domain.Statistics, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if len(username) < 3 || len(username) > 50 {
		return nil, nil, &ValidationError{Field: "username", Reason: "must be between 3 and 50 characters"}
	}
	if !strings.Contains(email, "@") {
		return nil, nil, &ValidationError{Field: "email", Reason: "invalid format"}
	}
	if !passwordIsStrong(password) {
		return nil, nil, ErrWeakPassword
	}

	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, ErrEmailTaken
	}
	taken, err = s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if taken {
		return nil, nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(fullName),
		Language:     "es",
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, nil, err
	}

	stats, err := s.stats.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, stats, nil
}

// Login verifies credentials and returns the user with their stats.
// The same error covers unknown email and wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Statistics, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if u == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	stats, err := s.stats.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, nil, err
	}
	return u, stats, nil
}

func passwordIsStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
