package handlers

import (
	"errors"

	"alkicorp-banksim/internal/core/domain"
	"alkicorp-banksim/internal/core/services"
	"alkicorp-banksim/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmploymentHandler handles job catalog and assignment endpoints
type EmploymentHandler struct {
	employmentService *services.EmploymentService
}

// NewEmploymentHandler creates a new employment handler
func NewEmploymentHandler(employmentService *services.EmploymentService) *EmploymentHandler {
	return &EmploymentHandler{employmentService: employmentService}
}

// ListJobs returns the job catalog
func (h *EmploymentHandler) ListJobs(c *fiber.Ctx) error {
	jobs, err := h.employmentService.ListJobs(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list jobs")
	}
	return response.Success(c, "Jobs retrieved successfully", jobs)
}

// AssignJob puts a client on a job's payroll
func (h *EmploymentHandler) AssignJob(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	clientID, ok := uintParam(c, "clientId")
	if !ok {
		return response.BadRequest(c, "Invalid client id")
	}
	jobID, ok := uintParam(c, "jobId")
	if !ok {
		return response.BadRequest(c, "Invalid job id")
	}

	client, err := h.employmentService.AssignJob(c.Context(), slotID, clientID, jobID)
	if err != nil {
		return h.mapError(c, err, "Failed to assign job")
	}
	return response.Success(c, "Job assigned successfully", client.ToResponse())
}

// QuitJob takes a client off payroll
func (h *EmploymentHandler) QuitJob(c *fiber.Ctx) error {
	slotID, ok := slotParam(c)
	if !ok {
		return response.BadRequest(c, "Invalid slot id")
	}
	clientID, ok := uintParam(c, "clientId")
	if !ok {
		return response.BadRequest(c, "Invalid client id")
	}

	client, err := h.employmentService.QuitJob(c.Context(), slotID, clientID)
	if err != nil {
		return h.mapError(c, err, "Failed to quit job")
	}
	return response.Success(c, "Job removed successfully", client.ToResponse())
}

func (h *EmploymentHandler) mapError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrSlotNotFound):
		return response.NotFound(c, "Slot not found")
	case errors.Is(err, domain.ErrClientNotFound):
		return response.NotFound(c, "Client not found")
	case errors.Is(err, domain.ErrJobNotFound):
		return response.NotFound(c, "Job not found")
	default:
		return response.InternalServerError(c, fallback)
	}
}
