package repository

import (
	"github.com/cristophermlima/pierce-connect/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// EventRepository defines the interface for event listing operations
type EventRepository interface {
	Create(event *models.Event) error
	GetByUUID(uuid string) (*models.Event, error)
	ListUpcoming(offset, limit int) ([]models.Event, error)
	ListByUserID(userID uint) ([]models.Event, error)
	Update(event *models.Event) error
	Delete(id uint) error
	Count() (int64, error)
}

// SupplierRepository defines the interface for supplier directory operations
type SupplierRepository interface {
	Create(supplier *models.Supplier) error
	GetByUUID(uuid string) (*models.Supplier, error)
	List(offset, limit int) ([]models.Supplier, error)
	ListByCategory(category string, offset, limit int) ([]models.Supplier, error)
	ListByUserID(userID uint) ([]models.Supplier, error)
	Update(supplier *models.Supplier) error
	Delete(id uint) error
	Count() (int64, error)
}

// PiercerRepository defines the interface for piercer catalog operations
type PiercerRepository interface {
	Create(piercer *models.Piercer) error
	GetByID(id uint) (*models.Piercer, error)
	GetByUUID(uuid string) (*models.Piercer, error)
	List(offset, limit int) ([]models.Piercer, error)
	ListByCity(city string, offset, limit int) ([]models.Piercer, error)
	ListByUserID(userID uint) ([]models.Piercer, error)
	Update(piercer *models.Piercer) error
	Delete(id uint) error
	Count() (int64, error)
}

// ReviewRepository defines the interface for piercer review operations
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByUserAndPiercer(userID, piercerID uint) (*models.Review, error)
	ListByPiercer(piercerID uint, offset, limit int) ([]models.Review, error)
	AverageRating(piercerID uint) (float64, int64, error)
	Delete(id uint) error
}
