package repository

import (
	"github.com/cristophermlima/pierce-connect/app/models"
	"gorm.io/gorm"
)

// piercerRepository implements the PiercerRepository interface
type piercerRepository struct {
	db *gorm.DB
}

// NewPiercerRepository creates a new piercer repository instance
func NewPiercerRepository(db *gorm.DB) PiercerRepository {
	return &piercerRepository{db: db}
}

// Create creates a new piercer profile
func (r *piercerRepository) Create(piercer *models.Piercer) error {
	return r.db.Create(piercer).Error
}

// GetByID retrieves a piercer by their ID
func (r *piercerRepository) GetByID(id uint) (*models.Piercer, error) {
	var piercer models.Piercer
	err := r.db.First(&piercer, id).Error
	if err != nil {
		return nil, err
	}
	return &piercer, nil
}

// GetByUUID retrieves a piercer by their public UUID
func (r *piercerRepository) GetByUUID(uuid string) (*models.Piercer, error) {
	var piercer models.Piercer
	err := r.db.Where("uuid = ?", uuid).First(&piercer).Error
	if err != nil {
		return nil, err
	}
	return &piercer, nil
}

// List retrieves a paginated list of piercers, newest first
func (r *piercerRepository) List(offset, limit int) ([]models.Piercer, error) {
	var piercers []models.Piercer
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&piercers).Error
	return piercers, err
}

// ListByCity retrieves piercers in a city, newest first
func (r *piercerRepository) ListByCity(city string, offset, limit int) ([]models.Piercer, error) {
	var piercers []models.Piercer
	err := r.db.Where("city = ?", city).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&piercers).Error
	return piercers, err
}

// ListByUserID retrieves all piercer profiles owned by a user
func (r *piercerRepository) ListByUserID(userID uint) ([]models.Piercer, error) {
	var piercers []models.Piercer
	err := r.db.Where("user_id = ?", userID).Find(&piercers).Error
	return piercers, err
}

// Update updates an existing piercer
func (r *piercerRepository) Update(piercer *models.Piercer) error {
	return r.db.Save(piercer).Error
}

// Delete soft deletes a piercer by their ID
func (r *piercerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Piercer{}, id).Error
}

// Count returns the total number of piercers
func (r *piercerRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Piercer{}).Count(&count).Error
	return count, err
}
