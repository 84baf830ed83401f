package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/parlourbd/parlour-server/internal/models"
)

type ServiceStore struct {
	db *gorm.DB
}

func NewServiceStore(db *gorm.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

func (s *ServiceStore) List(ctx context.Context) ([]models.Service, error) {
	// non-nil so an empty collection serializes as [] rather than null
	services := []models.Service{}
	if err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (s *ServiceStore) Create(ctx context.Context, service *models.Service) error {
	return s.db.WithContext(ctx).Create(service).Error
}

// Delete removes a service by id and reports how many rows went away.
// Deleting an unknown id is not an error.
func (s *ServiceStore) Delete(ctx context.Context, id string) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Service{})
	return res.RowsAffected, res.Error
}
