package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is insert-once; rows are never updated after creation.
type Payment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	BookID        string  `gorm:"size:36;not null;index" json:"bookId"`
	TransactionID string  `gorm:"size:100;not null" json:"transactionId"`
	Amount        float64 `json:"amount"`
	Email         string  `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"createdAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
