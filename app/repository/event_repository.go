package repository

import (
	"time"

	"github.com/cristophermlima/pierce-connect/app/models"
	"gorm.io/gorm"
)

// eventRepository implements the EventRepository interface
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository instance
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event listing
func (r *eventRepository) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// GetByUUID retrieves an event by its public UUID
func (r *eventRepository) GetByUUID(uuid string) (*models.Event, error) {
	var event models.Event
	err := r.db.Where("uuid = ?", uuid).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListUpcoming retrieves events that have not started yet, soonest first
func (r *eventRepository) ListUpcoming(offset, limit int) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("starts_at >= ?", time.Now()).
		Order("starts_at ASC").
		Offset(offset).Limit(limit).
		Find(&events).Error
	return events, err
}

// ListByUserID retrieves all events created by a user
func (r *eventRepository) ListByUserID(userID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("user_id = ?", userID).Order("starts_at ASC").Find(&events).Error
	return events, err
}

// Update updates an existing event
func (r *eventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// Delete soft deletes an event by its ID
func (r *eventRepository) Delete(id uint) error {
	return r.db.Delete(&models.Event{}, id).Error
}

// Count returns the total number of events
func (r *eventRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Event{}).Count(&count).Error
	return count, err
}
