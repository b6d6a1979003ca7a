package repository

import (
	"github.com/cristophermlima/pierce-connect/app/models"
	"gorm.io/gorm"
)

// reviewRepository implements the ReviewRepository interface
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository instance
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create creates a new review. The unique index on (user_id, piercer_id)
// rejects a second review from the same user for the same piercer.
func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// GetByUserAndPiercer retrieves a user's review of a piercer
func (r *reviewRepository) GetByUserAndPiercer(userID, piercerID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("user_id = ? AND piercer_id = ?", userID, piercerID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByPiercer retrieves reviews for a piercer, newest first
func (r *reviewRepository) ListByPiercer(piercerID uint, offset, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("piercer_id = ?", piercerID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

// AverageRating returns the mean rating and review count for a piercer
func (r *reviewRepository) AverageRating(piercerID uint) (float64, int64, error) {
	var count int64
	if err := r.db.Model(&models.Review{}).Where("piercer_id = ?", piercerID).Count(&count).Error; err != nil {
		return 0, 0, err
	}
	if count == 0 {
		return 0, 0, nil
	}
	var avg float64
	err := r.db.Model(&models.Review{}).Where("piercer_id = ?", piercerID).
		Select("COALESCE(AVG(rating), 0)").Row().Scan(&avg)
	if err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}

// Delete soft deletes a review by its ID
func (r *reviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}
