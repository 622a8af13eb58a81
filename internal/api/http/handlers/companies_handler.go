package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colts18seth/jobly/internal/api/dto"
	"github.com/colts18seth/jobly/internal/api/validation"
	"github.com/colts18seth/jobly/internal/service"
)

// CompaniesHandler serves /companies.
type CompaniesHandler struct {
	companies *service.CompanyService
	validator *validation.Validator
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(companies *service.CompanyService, validator *validation.Validator) *CompaniesHandler {
	return &CompaniesHandler{companies: companies, validator: validator}
}

// List handles GET /companies. Recognized filters: search, min_employees,
// max_employees.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	companies, err := h.companies.List(c.UserContext(), c.Queries())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"companies": dto.NewCompanyList(companies)})
}

// Get handles GET /companies/:handle.
func (h *CompaniesHandler) Get(c *fiber.Ctx) error {
	company, err := h.companies.Get(c.UserContext(), c.Params("handle"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"company": dto.NewCompanyResponse(*company)})
}

// Create handles POST /companies.
func (h *CompaniesHandler) Create(c *fiber.Ctx) error {
	var req dto.CompanyCreateRequest
	if err := h.validator.Decode(validation.CompanyCreate, c.Body(), &req); err != nil {
		return err
	}
	company, err := h.companies.Create(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"company": dto.NewCompanyResponse(*company)})
}

// Update handles PATCH /companies/:handle.
func (h *CompaniesHandler) Update(c *fiber.Ctx) error {
	fields, err := h.validator.Patch(validation.CompanyPatch, c.Body())
	if err != nil {
		return err
	}
	company, err := h.companies.Update(c.UserContext(), c.Params("handle"), fields)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"company": dto.NewCompanyResponse(*company)})
}

// Delete handles DELETE /companies/:handle.
func (h *CompaniesHandler) Delete(c *fiber.Ctx) error {
	if err := h.companies.Delete(c.UserContext(), c.Params("handle")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Company deleted"})
}
