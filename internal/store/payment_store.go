package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/parlourbd/parlour-server/internal/models"
)

type PaymentStore struct {
	db *gorm.DB
}

func NewPaymentStore(db *gorm.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

// Record inserts the payment and marks the referenced booking paid inside one
// transaction, so a failed booking update never strands a payment row.
func (s *PaymentStore) Record(ctx context.Context, payment *models.Payment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		return tx.Model(&models.Booking{}).
			Where("id = ?", payment.BookID).
			Updates(map[string]any{
				"paid":           true,
				"transaction_id": payment.TransactionID,
			}).Error
	})
}
