package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Review is a user review of a piercer.
type Review struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index:ux_reviews_user_piercer,unique,priority:1" json:"user_id"`
	PiercerID uint           `gorm:"not null;index:ux_reviews_user_piercer,unique,priority:2;index" json:"piercer_id"`
	Rating    int            `gorm:"not null" json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string         `gorm:"type:text" json:"comment" validate:"max=2000"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Review) Validate() error {
	v := validator.New()

	return v.Struct(r)
}
