package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colts18seth/jobly/internal/api/dto"
	"github.com/colts18seth/jobly/internal/api/validation"
	"github.com/colts18seth/jobly/internal/service"
)

// LoginHandler serves POST /login.
type LoginHandler struct {
	auth      *service.AuthService
	validator *validation.Validator
}

// NewLoginHandler constructs handler.
func NewLoginHandler(authService *service.AuthService, validator *validation.Validator) *LoginHandler {
	return &LoginHandler{auth: authService, validator: validator}
}

func (h *LoginHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := h.validator.Decode(validation.Login, c.Body(), &req); err != nil {
		return err
	}
	token, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{Token: token})
}
