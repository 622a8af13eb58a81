package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/colts18seth/jobly/internal/domain"
	"github.com/colts18seth/jobly/internal/events"
	"github.com/colts18seth/jobly/internal/repository"
)

const resourceJob = "job"

// JobService coordinates job reads and writes.
type JobService struct {
	jobs repository.JobRepository
	publisher
}

// NewJobService constructs the service.
func NewJobService(jobs repository.JobRepository, dispatcher events.Dispatcher, logger *zap.Logger) *JobService {
	return &JobService{jobs: jobs, publisher: newPublisher(dispatcher, logger)}
}

func (s *JobService) List(ctx context.Context, params map[string]string) ([]domain.Job, error) {
	return s.jobs.Search(ctx, params)
}

func (s *JobService) Get(ctx context.Context, id int) (*domain.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, resolveMissing(err, resourceJob, map[string]any{"id": id})
	}
	return job, nil
}

// Create posts a job. An unknown company handle surfaces as a validation error.
func (s *JobService) Create(ctx context.Context, job domain.Job) (*domain.Job, error) {
	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventJobCreated, resourceJob, strconv.Itoa(created.ID),
		map[string]any{"company_handle": created.CompanyHandle})
	return created, nil
}

func (s *JobService) Update(ctx context.Context, id int, fields map[string]any) (*domain.Job, error) {
	updated, err := s.jobs.Update(ctx, id, fields)
	if err != nil {
		return nil, resolveMissing(err, resourceJob, map[string]any{"id": id})
	}
	s.publish(ctx, events.EventJobUpdated, resourceJob, strconv.Itoa(id),
		events.UpdatedFieldsPayload{Fields: fieldNames(fields)})
	return updated, nil
}

func (s *JobService) Delete(ctx context.Context, id int) error {
	if err := s.jobs.Delete(ctx, id); err != nil {
		return resolveMissing(err, resourceJob, map[string]any{"id": id})
	}
	s.publish(ctx, events.EventJobDeleted, resourceJob, strconv.Itoa(id), nil)
	return nil
}
