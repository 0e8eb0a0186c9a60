package repository

import (
	"errors"
	"time"

	appdomain "jobtrack-backend/internal/application/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationRepository defines persistence operations for application records.
type ApplicationRepository interface {
	Create(app *appdomain.Application) error
	Save(app *appdomain.Application) error
	FindByID(id string) (*appdomain.Application, error)
	FindByUser(userID string) ([]appdomain.Application, error)
	// FindByUserCompanyTitle matches company and title case-insensitively.
	// Returns (nil, nil) when no record matches.
	FindByUserCompanyTitle(userID, company, title string) (*appdomain.Application, error)
	// FindFirstByUserCompany is the looser dedup fallback: any record for the
	// company regardless of title, oldest first.
	FindFirstByUserCompany(userID, company string) (*appdomain.Application, error)
	Delete(id string) error
}

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new instance of applicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{
		db: db,
	}
}

func (r *applicationRepository) Create(app *appdomain.Application) error {
	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	app.CreatedAt = time.Now()
	app.UpdatedAt = time.Now()
	return r.db.Create(app).Error
}

func (r *applicationRepository) Save(app *appdomain.Application) error {
	app.UpdatedAt = time.Now()
	return r.db.Save(app).Error
}

func (r *applicationRepository) FindByID(id string) (*appdomain.Application, error) {
	var app appdomain.Application
	err := r.db.Where("id = ?", id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindByUser(userID string) ([]appdomain.Application, error) {
	var apps []appdomain.Application
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) FindByUserCompanyTitle(userID, company, title string) (*appdomain.Application, error) {
	var app appdomain.Application
	err := r.db.
		Where("user_id = ? AND LOWER(company) = LOWER(?) AND LOWER(title) = LOWER(?)", userID, company, title).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindFirstByUserCompany(userID, company string) (*appdomain.Application, error) {
	var app appdomain.Application
	err := r.db.
		Where("user_id = ? AND LOWER(company) = LOWER(?)", userID, company).
		Order("created_at ASC").
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&appdomain.Application{}).Error
}
