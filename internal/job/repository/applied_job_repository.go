package repository

import (
	"time"

	jobdomain "jobtrack-backend/internal/job/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppliedJobRepository tracks which feed jobs each user has applied to.
type AppliedJobRepository interface {
	Create(link *jobdomain.AppliedJob) error
	Exists(userID, jobID string) (bool, error)
	FindJobIDsByUser(userID string) ([]string, error)
}

// appliedJobRepository implements AppliedJobRepository interface
type appliedJobRepository struct {
	db *gorm.DB
}

// NewAppliedJobRepository creates a new instance of appliedJobRepository
func NewAppliedJobRepository(db *gorm.DB) AppliedJobRepository {
	return &appliedJobRepository{
		db: db,
	}
}

func (r *appliedJobRepository) Create(link *jobdomain.AppliedJob) error {
	link.ID = uuid.New().String()
	link.CreatedAt = time.Now()
	return r.db.Create(link).Error
}

func (r *appliedJobRepository) Exists(userID, jobID string) (bool, error) {
	var count int64
	err := r.db.Model(&jobdomain.AppliedJob{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error
	return count > 0, err
}

func (r *appliedJobRepository) FindJobIDsByUser(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&jobdomain.AppliedJob{}).
		Where("user_id = ?", userID).
		Pluck("job_id", &ids).Error
	return ids, err
}
