package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is one reserved slot: a service booked by one customer on one date.
// The (email, service_name, booked_date) index backs the duplicate-slot rule.
type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Email       string  `gorm:"size:100;not null;uniqueIndex:idx_booking_slot" json:"email"`
	ServiceName string  `gorm:"size:100;not null;uniqueIndex:idx_booking_slot" json:"serviceName"`
	BookedDate  string  `gorm:"size:10;not null;uniqueIndex:idx_booking_slot" json:"bookedDate"`
	Price       float64 `json:"price"`

	Paid          bool   `gorm:"default:false" json:"paid"`
	TransactionID string `gorm:"size:100" json:"transactionId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
