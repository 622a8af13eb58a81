package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/colts18seth/jobly/internal/domain"
	"github.com/colts18seth/jobly/internal/events"
	"github.com/colts18seth/jobly/internal/repository"
)

const resourceCompany = "company"

// CompanyService coordinates company reads and writes.
type CompanyService struct {
	companies repository.CompanyRepository
	publisher
}

// NewCompanyService constructs the service.
func NewCompanyService(companies repository.CompanyRepository, dispatcher events.Dispatcher, logger *zap.Logger) *CompanyService {
	return &CompanyService{companies: companies, publisher: newPublisher(dispatcher, logger)}
}

// List returns companies matching the recognized filters in params.
func (s *CompanyService) List(ctx context.Context, params map[string]string) ([]domain.Company, error) {
	return s.companies.Search(ctx, params)
}

func (s *CompanyService) Get(ctx context.Context, handle string) (*domain.Company, error) {
	company, err := s.companies.GetByHandle(ctx, handle)
	if err != nil {
		return nil, resolveMissing(err, resourceCompany, map[string]any{"handle": handle})
	}
	return company, nil
}

func (s *CompanyService) Create(ctx context.Context, company domain.Company) (*domain.Company, error) {
	created, err := s.companies.Create(ctx, company)
	if err != nil {
		return nil, resolveDuplicate(err,
			fmt.Sprintf("duplicate company: %s", company.Handle),
			map[string]any{"handle": company.Handle})
	}
	s.publish(ctx, events.EventCompanyCreated, resourceCompany, created.Handle, nil)
	return created, nil
}

// Update applies a partial update. Only the supplied fields change.
func (s *CompanyService) Update(ctx context.Context, handle string, fields map[string]any) (*domain.Company, error) {
	updated, err := s.companies.Update(ctx, handle, fields)
	if err != nil {
		err = resolveMissing(err, resourceCompany, map[string]any{"handle": handle})
		return nil, resolveDuplicate(err, "company name already taken", nil)
	}
	s.publish(ctx, events.EventCompanyUpdated, resourceCompany, handle,
		events.UpdatedFieldsPayload{Fields: fieldNames(fields)})
	return updated, nil
}

func (s *CompanyService) Delete(ctx context.Context, handle string) error {
	if err := s.companies.Delete(ctx, handle); err != nil {
		return resolveMissing(err, resourceCompany, map[string]any{"handle": handle})
	}
	s.publish(ctx, events.EventCompanyDeleted, resourceCompany, handle, nil)
	return nil
}
