package repository

import (
	"errors"
	"time"

	reminderdomain "jobtrack-backend/internal/reminder/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderRepository defines persistence operations for reminders.
type ReminderRepository interface {
	Create(reminder *reminderdomain.Reminder) error
	Save(reminder *reminderdomain.Reminder) error
	FindByID(id string) (*reminderdomain.Reminder, error)
	FindByUser(userID string) ([]reminderdomain.Reminder, error)
	FindByApplicationAndKind(applicationID, kind string) (*reminderdomain.Reminder, error)
	Delete(id string) error
	DeleteByApplication(applicationID string) error
}

// reminderRepository implements ReminderRepository interface
type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new instance of reminderRepository
func NewReminderRepository(db *gorm.DB) ReminderRepository {
	return &reminderRepository{
		db: db,
	}
}

func (r *reminderRepository) Create(reminder *reminderdomain.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	reminder.CreatedAt = time.Now()
	reminder.UpdatedAt = time.Now()
	return r.db.Create(reminder).Error
}

func (r *reminderRepository) Save(reminder *reminderdomain.Reminder) error {
	reminder.UpdatedAt = time.Now()
	return r.db.Save(reminder).Error
}

func (r *reminderRepository) FindByID(id string) (*reminderdomain.Reminder, error) {
	var reminder reminderdomain.Reminder
	err := r.db.Where("id = ?", id).First(&reminder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderRepository) FindByUser(userID string) ([]reminderdomain.Reminder, error) {
	var reminders []reminderdomain.Reminder
	err := r.db.Where("user_id = ?", userID).Order("trigger_at ASC").Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *reminderRepository) FindByApplicationAndKind(applicationID, kind string) (*reminderdomain.Reminder, error) {
	var reminder reminderdomain.Reminder
	err := r.db.Where("application_id = ? AND kind = ?", applicationID, kind).First(&reminder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&reminderdomain.Reminder{}).Error
}

func (r *reminderRepository) DeleteByApplication(applicationID string) error {
	return r.db.Where("application_id = ?", applicationID).Delete(&reminderdomain.Reminder{}).Error
}
