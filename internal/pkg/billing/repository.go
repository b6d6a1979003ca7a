package billing

import (
	"github.com/cristophermlima/pierce-connect/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides the local DB operations used by the billing service.
type Repository interface {
	UpsertSubscriber(sub *models.Subscriber) error
	GetProfileByUserID(userID uint) (*models.Profile, error)
	SaveProfileCustomerID(userID uint, customerID string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) UpsertSubscriber(sub *models.Subscriber) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"email",
			"stripe_customer_id",
			"plan_tier",
			"subscribed",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("user_id = ?", sub.UserID).First(sub).Error
}

func (r *gormRepository) GetProfileByUserID(userID uint) (*models.Profile, error) {
	return models.GetOrCreateProfile(r.db, userID)
}

func (r *gormRepository) SaveProfileCustomerID(userID uint, customerID string) error {
	return r.db.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		Update("stripe_customer_id", customerID).Error
}
