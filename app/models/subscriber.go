package models

import "time"

// Subscriber is the provisional, locally stored subscription record written
// at checkout-session-creation time. It is a hint for the UI only; the
// authoritative subscribed state is always derived live from Stripe and this
// row is never consulted for authorization decisions.
type Subscriber struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"uniqueIndex" json:"user_id"`
	Email            string    `gorm:"type:varchar(200);not null" json:"email"`
	StripeCustomerID string    `gorm:"type:varchar(191);default:''" json:"stripe_customer_id"`
	PlanTier         string    `gorm:"type:varchar(64);not null;default:''" json:"plan_tier"`
	Subscribed       bool      `gorm:"default:false" json:"subscribed"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
