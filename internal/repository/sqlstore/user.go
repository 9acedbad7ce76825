package sqlstore

import (
	"context"

	"recipe_manager/internal/domain"

	"gorm.io/gorm"
)

// CreateUser inserts a new user; a duplicate email yields domain.ErrConflict
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	rec := fromUser(user)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return wrapError(err, "create user")
	}
	user.CreatedAt = rec.CreatedAt
	return nil
}

// FindUserByID loads a user by primary key
func (s *Store) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, wrapError(err, "find user by id")
	}
	return toUser(rec), nil
}

// FindUserByEmail loads a user by login email
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var rec userRecord
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error; err != nil {
		return nil, wrapError(err, "find user by email")
	}
	return toUser(rec), nil
}

// UpdateProfile overwrites username and bio and returns the new state
func (s *Store) UpdateProfile(ctx context.Context, id, username, bio string) (*domain.User, error) {
	res := s.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", id).
		Updates(map[string]any{"username": username, "bio": bio})
	if res.Error != nil {
		return nil, wrapError(res.Error, "update profile")
	}
	return s.FindUserByID(ctx, id)
}

// UpdatePasswordHash replaces the stored password hash
func (s *Store) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	res := s.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return wrapError(res.Error, "update password")
	}
	if res.RowsAffected == 0 {
		return wrapError(gorm.ErrRecordNotFound, "update password")
	}
	return nil
}
