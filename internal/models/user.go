package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const RoleAdmin = "admin"

// User identity is the (name, email) pair: registration is idempotent on it,
// and email alone is deliberately not unique.
type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name  string `gorm:"size:100;not null;uniqueIndex:idx_user_identity" json:"name"`
	Email string `gorm:"size:100;not null;uniqueIndex:idx_user_identity" json:"email"`
	Role  string `gorm:"size:20;default:'user'" json:"role"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
