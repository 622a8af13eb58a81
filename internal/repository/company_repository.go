package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/colts18seth/jobly/internal/domain"
	"github.com/colts18seth/jobly/internal/querybuilder"
)

var companyColumns = []string{"handle", "name", "num_employees", "description", "logo_url"}

// CompanyUpdatable is the allow-list for partial company updates.
var CompanyUpdatable = []string{"name", "num_employees", "description", "logo_url"}

var companySearch = querybuilder.FilterSet{
	Table:   "companies",
	Columns: companyColumns,
	Filters: []querybuilder.Filter{
		{Param: "search", Column: "name", Op: querybuilder.Contains, Kind: querybuilder.Text},
		{Param: "min_employees", Column: "num_employees", Op: querybuilder.AtLeast, Kind: querybuilder.Integer},
		{Param: "max_employees", Column: "num_employees", Op: querybuilder.AtMost, Kind: querybuilder.Integer},
	},
	Ranges:  []querybuilder.Range{{Min: "min_employees", Max: "max_employees"}},
	OrderBy: []string{"handle"},
}

// CompanyRepository encapsulates company persistence.
type CompanyRepository interface {
	Search(ctx context.Context, params map[string]string) ([]domain.Company, error)
	GetByHandle(ctx context.Context, handle string) (*domain.Company, error)
	Create(ctx context.Context, company domain.Company) (*domain.Company, error)
	Update(ctx context.Context, handle string, fields map[string]any) (*domain.Company, error)
	Delete(ctx context.Context, handle string) error
}

type companyRepository struct {
	db DBTX
}

// NewCompanyRepository returns a Postgres-backed implementation.
func NewCompanyRepository(db DBTX) CompanyRepository {
	return &companyRepository{db: db}
}

// Search builds the listing query from the request's filter parameters. A
// malformed filter fails here, before anything is sent to the database.
func (r *companyRepository) Search(ctx context.Context, params map[string]string) ([]domain.Company, error) {
	stmt, err := companySearch.Build(params)
	if err != nil {
		return nil, err
	}
	return queryAll(ctx, r.db, stmt, pgx.RowToStructByName[domain.Company])
}

func (r *companyRepository) GetByHandle(ctx context.Context, handle string) (*domain.Company, error) {
	const query = `
        SELECT handle, name, num_employees, description, logo_url
        FROM companies WHERE handle=$1`
	return queryOne(ctx, r.db, querybuilder.Statement{SQL: query, Args: []any{handle}},
		pgx.RowToStructByName[domain.Company])
}

func (r *companyRepository) Create(ctx context.Context, company domain.Company) (*domain.Company, error) {
	const query = `
        INSERT INTO companies (handle, name, num_employees, description, logo_url)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING handle, name, num_employees, description, logo_url`
	return queryOne(ctx, r.db, querybuilder.Statement{SQL: query, Args: []any{
		company.Handle,
		company.Name,
		company.NumEmployees,
		company.Description,
		company.LogoURL,
	}}, pgx.RowToStructByName[domain.Company])
}

func (r *companyRepository) Update(ctx context.Context, handle string, fields map[string]any) (*domain.Company, error) {
	stmt, err := querybuilder.BuildUpdate(querybuilder.UpdateSpec{
		Table:     "companies",
		KeyColumn: "handle",
		KeyValue:  handle,
		Fields:    fields,
		Allowed:   CompanyUpdatable,
		Returning: companyColumns,
	})
	if err != nil {
		return nil, err
	}
	return queryOne(ctx, r.db, stmt, pgx.RowToStructByName[domain.Company])
}

func (r *companyRepository) Delete(ctx context.Context, handle string) error {
	const query = `DELETE FROM companies WHERE handle=$1`
	return execAffectingOne(ctx, r.db, querybuilder.Statement{SQL: query, Args: []any{handle}})
}
