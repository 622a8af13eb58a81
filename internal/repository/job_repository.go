package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/colts18seth/jobly/internal/domain"
	"github.com/colts18seth/jobly/internal/querybuilder"
)

var jobColumns = []string{"id", "title", "salary", "equity", "company_handle", "date_posted"}

// JobUpdatable is the allow-list for partial job updates.
var JobUpdatable = []string{"title", "salary", "equity"}

var jobSearch = querybuilder.FilterSet{
	Table:   "jobs",
	Columns: jobColumns,
	Filters: []querybuilder.Filter{
		{Param: "search", Column: "title", Op: querybuilder.Contains, Kind: querybuilder.Text},
		{Param: "min_salary", Column: "salary", Op: querybuilder.AtLeast, Kind: querybuilder.Decimal},
		{Param: "min_equity", Column: "equity", Op: querybuilder.AtLeast, Kind: querybuilder.Decimal},
	},
	OrderBy: []string{"id"},
}

// JobRepository encapsulates job persistence.
type JobRepository interface {
	Search(ctx context.Context, params map[string]string) ([]domain.Job, error)
	GetByID(ctx context.Context, id int) (*domain.Job, error)
	Create(ctx context.Context, job domain.Job) (*domain.Job, error)
	Update(ctx context.Context, id int, fields map[string]any) (*domain.Job, error)
	Delete(ctx context.Context, id int) error
}

type jobRepository struct {
	db DBTX
}

// NewJobRepository returns a Postgres-backed implementation.
func NewJobRepository(db DBTX) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Search(ctx context.Context, params map[string]string) ([]domain.Job, error) {
	stmt, err := jobSearch.Build(params)
	if err != nil {
		return nil, err
	}
	return queryAll(ctx, r.db, stmt, pgx.RowToStructByName[domain.Job])
}

func (r *jobRepository) GetByID(ctx context.Context, id int) (*domain.Job, error) {
	const query = `
        SELECT id, title, salary, equity, company_handle, date_posted
        FROM jobs WHERE id=$1`
	return queryOne(ctx, r.db, querybuilder.Statement{SQL: query, Args: []any{id}},
		pgx.RowToStructByName[domain.Job])
}

func (r *jobRepository) Create(ctx context.Context, job domain.Job) (*domain.Job, error) {
	const query = `
        INSERT INTO jobs (title, salary, equity, company_handle)
        VALUES ($1, $2, $3, $4)
        RETURNING id, title, salary, equity, company_handle, date_posted`
	return queryOne(ctx, r.db, querybuilder.Statement{SQL: query, Args: []any{
		job.Title,
		job.Salary,
		job.Equity,
		job.CompanyHandle,
	}}, pgx.RowToStructByName[domain.Job])
}

func (r *jobRepository) Update(ctx context.Context, id int, fields map[string]any) (*domain.Job, error) {
	stmt, err := querybuilder.BuildUpdate(querybuilder.UpdateSpec{
		Table:     "jobs",
		KeyColumn: "id",
		KeyValue:  id,
		Fields:    fields,
		Allowed:   JobUpdatable,
		Returning: jobColumns,
	})
	if err != nil {
		return nil, err
	}
	return queryOne(ctx, r.db, stmt, pgx.RowToStructByName[domain.Job])
}

func (r *jobRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM jobs WHERE id=$1`
	return execAffectingOne(ctx, r.db, querybuilder.Statement{SQL: query, Args: []any{id}})
}
