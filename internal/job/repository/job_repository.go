package repository

import (
	"errors"
	"time"

	jobdomain "jobtrack-backend/internal/job/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobRepository defines persistence operations for imported jobs.
type JobRepository interface {
	// Upsert inserts jobs, updating rows that share an external URL so the
	// daily feed refresh does not accumulate duplicates.
	Upsert(jobs []jobdomain.Job) error
	FindAll() ([]jobdomain.Job, error)
	FindByID(id string) (*jobdomain.Job, error)
	Count() (int64, error)
}

// jobRepository implements JobRepository interface
type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new instance of jobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{
		db: db,
	}
}

func (r *jobRepository) Upsert(jobs []jobdomain.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	now := time.Now()
	for i := range jobs {
		if jobs[i].ID == "" {
			jobs[i].ID = uuid.New().String()
		}
		jobs[i].CreatedAt = now
		jobs[i].UpdatedAt = now
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_url"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "company", "salary", "description", "location", "updated_at"}),
	}).Create(&jobs).Error
}

func (r *jobRepository) FindAll() ([]jobdomain.Job, error) {
	var jobs []jobdomain.Job
	err := r.db.Order("created_at DESC").Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepository) FindByID(id string) (*jobdomain.Job, error) {
	var job jobdomain.Job
	err := r.db.Where("id = ?", id).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&jobdomain.Job{}).Count(&count).Error
	return count, err
}
