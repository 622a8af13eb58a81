package dto

import "github.com/colts18seth/jobly/internal/domain"

// CompanyCreateRequest payload for POST /companies.
type CompanyCreateRequest struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	NumEmployees *int    `json:"num_employees"`
	Description  *string `json:"description"`
	LogoURL      *string `json:"logo_url"`
}

// ToDomain converts the request into a Company.
func (r CompanyCreateRequest) ToDomain() domain.Company {
	return domain.Company{
		Handle:       r.Handle,
		Name:         r.Name,
		NumEmployees: r.NumEmployees,
		Description:  r.Description,
		LogoURL:      r.LogoURL,
	}
}

// CompanyResponse is the public shape of a company.
type CompanyResponse struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	NumEmployees *int    `json:"num_employees"`
	Description  *string `json:"description"`
	LogoURL      *string `json:"logo_url"`
}

func NewCompanyResponse(c domain.Company) CompanyResponse {
	return CompanyResponse(c)
}

func NewCompanyList(companies []domain.Company) []CompanyResponse {
	out := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, NewCompanyResponse(c))
	}
	return out
}
