package repository

import (
	"github.com/cristophermlima/pierce-connect/app/models"
	"gorm.io/gorm"
)

// supplierRepository implements the SupplierRepository interface
type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository instance
func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

// Create creates a new supplier entry
func (r *supplierRepository) Create(supplier *models.Supplier) error {
	return r.db.Create(supplier).Error
}

// GetByUUID retrieves a supplier by its public UUID
func (r *supplierRepository) GetByUUID(uuid string) (*models.Supplier, error) {
	var supplier models.Supplier
	err := r.db.Where("uuid = ?", uuid).First(&supplier).Error
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// List retrieves a paginated list of suppliers, newest first
func (r *supplierRepository) List(offset, limit int) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&suppliers).Error
	return suppliers, err
}

// ListByCategory retrieves suppliers in a category, newest first
func (r *supplierRepository) ListByCategory(category string, offset, limit int) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.db.Where("category = ?", category).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&suppliers).Error
	return suppliers, err
}

// ListByUserID retrieves all supplier entries owned by a user
func (r *supplierRepository) ListByUserID(userID uint) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.db.Where("user_id = ?", userID).Find(&suppliers).Error
	return suppliers, err
}

// Update updates an existing supplier
func (r *supplierRepository) Update(supplier *models.Supplier) error {
	return r.db.Save(supplier).Error
}

// Delete soft deletes a supplier by its ID
func (r *supplierRepository) Delete(id uint) error {
	return r.db.Delete(&models.Supplier{}, id).Error
}

// Count returns the total number of suppliers
func (r *supplierRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Supplier{}).Count(&count).Error
	return count, err
}
