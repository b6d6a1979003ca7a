package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Piercer is a catalog entry for a professional piercer.
type Piercer struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UUID            string         `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	Name            string         `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	StudioName      string         `gorm:"type:varchar(200);default:''" json:"studio_name" validate:"max=200"`
	Bio             string         `gorm:"type:text" json:"bio" validate:"max=5000"`
	City            string         `gorm:"type:varchar(100);default:'';index" json:"city" validate:"max=100"`
	State           string         `gorm:"type:varchar(50);default:''" json:"state" validate:"max=50"`
	InstagramURL    string         `gorm:"type:varchar(255);default:''" json:"instagram_url" validate:"omitempty,url,max=255"`
	YearsExperience int            `gorm:"default:0" json:"years_experience" validate:"gte=0,lte=80"`
	ViewCount       int64          `gorm:"default:0" json:"view_count"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Piercer) Validate() error {
	v := validator.New()

	return v.Struct(p)
}

// BeforeCreate assigns a public UUID when none was set.
func (p *Piercer) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.New().String()
	}
	return nil
}
