package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile stores per-user marketplace data, including the linked Stripe
// customer id once the user has gone through checkout at least once.
type Profile struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"uniqueIndex" json:"user_id"`
	DisplayName      string         `gorm:"type:varchar(150);default:''" json:"display_name"`
	City             string         `gorm:"type:varchar(100);default:''" json:"city"`
	State            string         `gorm:"type:varchar(50);default:''" json:"state"`
	StripeCustomerID string         `gorm:"type:varchar(191);default:'';index" json:"-"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// GetOrCreateProfile returns existing profile data or creates defaults.
func GetOrCreateProfile(db *gorm.DB, userID uint) (*Profile, error) {
	var p Profile
	if err := db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			p = Profile{UserID: userID}
			if err := db.Create(&p).Error; err != nil {
				return nil, err
			}
			return &p, nil
		}
		return nil, err
	}
	return &p, nil
}
