package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colts18seth/jobly/internal/api/dto"
	"github.com/colts18seth/jobly/internal/api/validation"
	"github.com/colts18seth/jobly/internal/service"
)

// UsersHandler serves /users.
type UsersHandler struct {
	users     *service.UserService
	auth      *service.AuthService
	validator *validation.Validator
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService, authService *service.AuthService, validator *validation.Validator) *UsersHandler {
	return &UsersHandler{users: users, auth: authService, validator: validator}
}

// Register handles POST /users and answers with a token for the new account.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := h.validator.Decode(validation.UserRegister, c.Body(), &req); err != nil {
		return err
	}
	token, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		PhotoURL:  req.PhotoURL,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TokenResponse{Token: token})
}

func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"users": dto.NewUserList(users)})
}

func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(*user)})
}

func (h *UsersHandler) Update(c *fiber.Ctx) error {
	fields, err := h.validator.Patch(validation.UserPatch, c.Body())
	if err != nil {
		return err
	}
	user, err := h.users.Update(c.UserContext(), c.Params("username"), fields)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(*user)})
}

func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("username")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}
