package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/parlourbd/parlour-server/internal/models"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// FindByNameEmail is the registration identity lookup. (nil, nil) when absent.
func (s *UserStore) FindByNameEmail(ctx context.Context, name, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("name = ? AND email = ?", name, email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) IsAdmin(ctx context.Context, email string) (bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// PromoteToAdmin sets role=admin for every user holding the email and reports
// how many rows the update touched.
func (s *UserStore) PromoteToAdmin(ctx context.Context, email string) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Update("role", models.RoleAdmin)
	return res.RowsAffected, res.Error
}
