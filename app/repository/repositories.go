package repository

import (
	"gorm.io/gorm"
)

// Repositories bundles all repository instances
type Repositories struct {
	User     UserRepository
	Event    EventRepository
	Supplier SupplierRepository
	Piercer  PiercerRepository
	Review   ReviewRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:     NewUserRepository(db),
		Event:    NewEventRepository(db),
		Supplier: NewSupplierRepository(db),
		Piercer:  NewPiercerRepository(db),
		Review:   NewReviewRepository(db),
	}
}
