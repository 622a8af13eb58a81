package dto

import "github.com/colts18seth/jobly/internal/domain"

// UserRegisterRequest payload for POST /users.
type UserRegisterRequest struct {
	Username  string  `json:"username"`
	Password  string  `json:"password"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	PhotoURL  *string `json:"photo_url"`
}

// UserLoginRequest payload for POST /login.
type UserLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by login and registration.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the public shape of a single user. The password hash is
// never part of it.
type UserResponse struct {
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	PhotoURL  *string `json:"photo_url"`
	IsAdmin   bool    `json:"is_admin"`
}

// UserSummary is the listing shape.
type UserSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		PhotoURL:  u.PhotoURL,
		IsAdmin:   u.IsAdmin,
	}
}

func NewUserList(users []domain.User) []UserSummary {
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
		})
	}
	return out
}
