package domain

import "time"

// Job is an opening posted by a company.
type Job struct {
	ID            int       `db:"id"`
	Title         string    `db:"title"`
	Salary        float64   `db:"salary"`
	Equity        float64   `db:"equity"`
	CompanyHandle string    `db:"company_handle"`
	DatePosted    time.Time `db:"date_posted"`
}
