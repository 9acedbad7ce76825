// Package service holds the user and recipe operations behind the HTTP layer.
// Errors are wrapped domain error kinds; callers match them with errors.Is.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe_manager/internal/domain"
	"recipe_manager/internal/repository"
	"recipe_manager/internal/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost factor for stored hashes
const PasswordCost = 10

// UserService handles registration, login and profile maintenance
type UserService struct {
	users     repository.UserStore
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewUserService creates a UserService issuing tokens valid for tokenTTL
func NewUserService(users repository.UserStore, jwtSecret string, tokenTTL time.Duration) *UserService {
	return &UserService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

// LoginResult is returned by a successful Login
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Message   string
	User      *domain.User
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user. A taken email is reported as domain.ErrConflict,
// either by the lookup or by the store's unique index when two requests race.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	_, err := s.users.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("register %s: %w", email, domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost) // Hash the password
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(username),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err // Unique email index catches a racing registration
	}
	return user, nil
}

// Login verifies credentials and issues a signed token for the user
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err // domain.ErrNotFound when the email is unknown
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("login %s: %w", user.Email, domain.ErrInvalidCredentials)
	}
	now := s.now()
	token, err := utils.GenerateJWTAt(user.ID, s.jwtSecret, s.tokenTTL, now)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(s.tokenTTL),
		Message:   user.Username + " logged in successfully",
		User:      user,
	}, nil
}

// GetProfile returns the user record; the hash is never serialised
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindUserByID(ctx, userID)
}

// UpdateProfile overwrites username and bio. Usernames are not unique.
func (s *UserService) UpdateProfile(ctx context.Context, userID, username, bio string) (*domain.User, error) {
	return s.users.UpdateProfile(ctx, userID, strings.TrimSpace(username), bio)
}

// ChangePassword replaces the hash after verifying the current password
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("change password: %w", domain.ErrInvalidCredentials)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), PasswordCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePasswordHash(ctx, userID, string(hash))
}
