package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"jobtracker/internal/cache"
	apperrors "jobtracker/internal/errors"
	"jobtracker/internal/model"
	"jobtracker/internal/repository"
)

const jobListCacheTTL = 5 * time.Minute

// Cache is the subset of cache.Client the job service relies on.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

var _ Cache = (*cache.Client)(nil)

// CreateJobInput carries the fields accepted when creating a job. Omitted
// status/category/notes fall back to schema defaults.
type CreateJobInput struct {
	Company     string
	Role        string
	DateApplied string
	Status      model.JobStatus
	Notes       string
	Category    model.JobCategory
}

// UpdateJobInput carries a partial update; nil fields are left untouched.
type UpdateJobInput struct {
	Company     *string
	Role        *string
	DateApplied *string
	Status      *model.JobStatus
	Notes       *string
	Category    *model.JobCategory
}

// JobService exposes job-application operations, all scoped by the owning
// user id taken from the caller's session.
type JobService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.JobApplication, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*model.JobApplication, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateJobInput) (*model.JobApplication, error)
	Update(ctx context.Context, id, userID uuid.UUID, input UpdateJobInput) (*model.JobApplication, error)
	DeleteMany(ctx context.Context, userID uuid.UUID, ids []string) (int64, error)
}

type jobService struct {
	repo  repository.JobRepository
	cache Cache
}

// NewJobService builds a JobService with repository and cache.
func NewJobService(repo repository.JobRepository, cache Cache) JobService {
	return &jobService{repo: repo, cache: cache}
}

func (s *jobService) listCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("jobs:%s", userID)
}

// List returns the user's jobs newest-created first, serving from Redis when
// a fresh copy exists. Cache failures degrade to a repository read.
func (s *jobService) List(ctx context.Context, userID uuid.UUID) ([]model.JobApplication, error) {
	if data, _ := s.cache.Get(ctx, s.listCacheKey(userID)); data != nil {
		var cached []model.JobApplication
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	jobs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		// An empty list serializes as [] rather than null.
		jobs = []model.JobApplication{}
	}

	if payload, err := json.Marshal(jobs); err == nil {
		_ = s.cache.Set(ctx, s.listCacheKey(userID), payload, jobListCacheTTL)
	}
	return jobs, nil
}

// Get returns a single owned job. Absent and foreign-owned ids both map to
// ErrJobNotFound so existence never leaks across users.
func (s *jobService) Get(ctx context.Context, id, userID uuid.UUID) (*model.JobApplication, error) {
	job, err := s.repo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// Create stores a new job owned by userID, applying defaults for omitted
// optional fields.
func (s *jobService) Create(ctx context.Context, userID uuid.UUID, input CreateJobInput) (*model.JobApplication, error) {
	job := &model.JobApplication{
		UserID:      userID,
		Company:     input.Company,
		Role:        input.Role,
		DateApplied: input.DateApplied,
		Status:      input.Status,
		Notes:       input.Notes,
		Category:    input.Category,
	}
	if job.Status == "" {
		job.Status = model.StatusApplied
	}
	if job.Category == "" {
		job.Category = model.CategoryOther
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	_ = s.cache.Delete(ctx, s.listCacheKey(userID))
	return job, nil
}

// Update merges only the provided fields into an owned job and returns the
// refreshed record, under the same non-leaking not-found rule as Get.
func (s *jobService) Update(ctx context.Context, id, userID uuid.UUID, input UpdateJobInput) (*model.JobApplication, error) {
	if _, err := s.Get(ctx, id, userID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Company != nil {
		fields["company"] = *input.Company
	}
	if input.Role != nil {
		fields["role"] = *input.Role
	}
	if input.DateApplied != nil {
		fields["date_applied"] = *input.DateApplied
	}
	if input.Status != nil {
		fields["status"] = *input.Status
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}
	if input.Category != nil {
		fields["category"] = *input.Category
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
		if err := s.repo.UpdateFields(ctx, id, userID, fields); err != nil {
			return nil, fmt.Errorf("update job: %w", err)
		}
		_ = s.cache.Delete(ctx, s.listCacheKey(userID))
	}

	return s.Get(ctx, id, userID)
}

// DeleteMany hard-deletes the owned subset of ids, reporting how many rows
// were actually removed. Malformed ids and ids owned by other users are
// silently ignored rather than treated as errors.
func (s *jobService) DeleteMany(ctx context.Context, userID uuid.UUID, ids []string) (int64, error) {
	valid := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		if id, err := uuid.Parse(raw); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return 0, nil
	}

	deleted, err := s.repo.DeleteByIDsAndUser(ctx, valid, userID)
	if err != nil {
		return 0, fmt.Errorf("delete jobs: %w", err)
	}
	if deleted > 0 {
		_ = s.cache.Delete(ctx, s.listCacheKey(userID))
	}
	return deleted, nil
}
