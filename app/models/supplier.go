package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier is a directory entry for jewelry and equipment suppliers.
type Supplier struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UUID        string         `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	Name        string         `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=2,max=200"`
	Description string         `gorm:"type:text" json:"description" validate:"max=5000"`
	Category    string         `gorm:"type:varchar(100);default:'';index" json:"category" validate:"max=100"`
	WebsiteURL  string         `gorm:"type:varchar(255);default:''" json:"website_url" validate:"omitempty,url,max=255"`
	Email       string         `gorm:"type:varchar(200);default:''" json:"email" validate:"omitempty,email,max=200"`
	Phone       string         `gorm:"type:varchar(40);default:''" json:"phone" validate:"max=40"`
	City        string         `gorm:"type:varchar(100);default:'';index" json:"city" validate:"max=100"`
	State       string         `gorm:"type:varchar(50);default:''" json:"state" validate:"max=50"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Supplier) Validate() error {
	v := validator.New()

	return v.Struct(s)
}

// BeforeCreate assigns a public UUID when none was set.
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		s.UUID = uuid.New().String()
	}
	return nil
}
