package dto

import (
	"time"

	"github.com/colts18seth/jobly/internal/domain"
)

// JobCreateRequest payload for POST /jobs.
type JobCreateRequest struct {
	Title         string  `json:"title"`
	Salary        float64 `json:"salary"`
	Equity        float64 `json:"equity"`
	CompanyHandle string  `json:"company_handle"`
}

func (r JobCreateRequest) ToDomain() domain.Job {
	return domain.Job{
		Title:         r.Title,
		Salary:        r.Salary,
		Equity:        r.Equity,
		CompanyHandle: r.CompanyHandle,
	}
}

// JobResponse is the public shape of a job.
type JobResponse struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Salary        float64   `json:"salary"`
	Equity        float64   `json:"equity"`
	CompanyHandle string    `json:"company_handle"`
	DatePosted    time.Time `json:"date_posted"`
}

func NewJobResponse(j domain.Job) JobResponse {
	return JobResponse(j)
}

func NewJobList(jobs []domain.Job) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, NewJobResponse(j))
	}
	return out
}
