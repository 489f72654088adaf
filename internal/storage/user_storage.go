package storage

import (
	"context"

	"github.com/lianruiying/Language-Tutor/internal/models"
)

// CreateUser inserts u and fills its ID. Returns ErrDuplicate if username or email is taken.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.conn(ctx).Create(u).Error)
}

func (s *Store) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	users := []models.User{}
	err := s.conn(ctx).Order("id ASC").Offset(skip).Limit(limit).Find(&users).Error
	return users, translate(err)
}

// SaveUser writes every column of an existing user.
func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	return translate(s.conn(ctx).Save(u).Error)
}
