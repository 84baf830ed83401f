package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/parlourbd/parlour-server/internal/models"
)

type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

// ListAll is the unfiltered admin view.
func (s *BookingStore) ListAll(ctx context.Context) ([]models.Booking, error) {
	bookings := []models.Booking{}
	if err := s.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *BookingStore) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	if err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetByID returns (nil, nil) when no booking exists; nil is the not-found
// signal for callers.
func (s *BookingStore) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindBySlot looks up a booking occupying the (email, serviceName, bookedDate)
// slot. Returns (nil, nil) when the slot is free.
func (s *BookingStore) FindBySlot(ctx context.Context, email, serviceName, bookedDate string) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Where("email = ? AND service_name = ? AND booked_date = ?", email, serviceName, bookedDate).
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingStore) Create(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Create(booking).Error
}

func (s *BookingStore) Delete(ctx context.Context, id string) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Booking{})
	return res.RowsAffected, res.Error
}
