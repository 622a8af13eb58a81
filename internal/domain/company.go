package domain

// Company is a hiring organization, keyed by its handle.
type Company struct {
	Handle       string  `db:"handle"`
	Name         string  `db:"name"`
	NumEmployees *int    `db:"num_employees"`
	Description  *string `db:"description"`
	LogoURL      *string `db:"logo_url"`
}
