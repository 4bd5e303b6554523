package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobtracker/internal/model"
)

// JobRepository defines job-application persistence operations. Every query
// filters by the owning user id; there is no unscoped access path.
type JobRepository interface {
	Create(ctx context.Context, job *model.JobApplication) error
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.JobApplication, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.JobApplication, error)
	UpdateFields(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) error
	DeleteByIDsAndUser(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository builds a GORM-backed repository.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *model.JobApplication) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.JobApplication, error) {
	var job model.JobApplication
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// ListByUser returns the user's jobs, newest-created first.
func (r *jobRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.JobApplication, error) {
	var jobs []model.JobApplication
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateFields applies a partial update to a single owned job. Callers must
// verify ownership first; a no-op update and a missing row are
// indistinguishable here because MySQL reports zero affected rows for both.
func (r *jobRepository) UpdateFields(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.JobApplication{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields).Error
}

// DeleteByIDsAndUser hard-deletes the intersection of the id set and the
// user's ownership, returning the count actually deleted.
func (r *jobRepository) DeleteByIDsAndUser(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, userID).
		Delete(&model.JobApplication{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
