package domain

// User is a registered account. Password holds the bcrypt hash and is never
// part of a public projection.
type User struct {
	Username  string  `db:"username"`
	Password  string  `db:"password"`
	FirstName string  `db:"first_name"`
	LastName  string  `db:"last_name"`
	Email     string  `db:"email"`
	PhotoURL  *string `db:"photo_url"`
	IsAdmin   bool    `db:"is_admin"`
}
