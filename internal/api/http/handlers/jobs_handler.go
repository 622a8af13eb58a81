package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/colts18seth/jobly/internal/api/dto"
	"github.com/colts18seth/jobly/internal/api/validation"
	"github.com/colts18seth/jobly/internal/service"
	apperrors "github.com/colts18seth/jobly/pkg/util/errorutil"
)

// JobsHandler serves /jobs.
type JobsHandler struct {
	jobs      *service.JobService
	validator *validation.Validator
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobs *service.JobService, validator *validation.Validator) *JobsHandler {
	return &JobsHandler{jobs: jobs, validator: validator}
}

func (h *JobsHandler) List(c *fiber.Ctx) error {
	jobs, err := h.jobs.List(c.UserContext(), c.Queries())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"jobs": dto.NewJobList(jobs)})
}

func (h *JobsHandler) Get(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}
	job, err := h.jobs.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": dto.NewJobResponse(*job)})
}

func (h *JobsHandler) Create(c *fiber.Ctx) error {
	var req dto.JobCreateRequest
	if err := h.validator.Decode(validation.JobCreate, c.Body(), &req); err != nil {
		return err
	}
	job, err := h.jobs.Create(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": dto.NewJobResponse(*job)})
}

func (h *JobsHandler) Update(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}
	fields, err := h.validator.Patch(validation.JobPatch, c.Body())
	if err != nil {
		return err
	}
	job, err := h.jobs.Update(c.UserContext(), id, fields)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": dto.NewJobResponse(*job)})
}

func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}
	if err := h.jobs.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Job deleted"})
}

func jobID(c *fiber.Ctx) (int, error) {
	raw := c.Params("id")
	// job ids are SERIAL, so anything past 32 bits cannot exist
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("id must be a positive integer", map[string]any{"id": raw})
	}
	return int(id), nil
}
