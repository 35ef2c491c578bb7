package handlers

import (
	"errors"
	"fmt"
	"log"

	"floormapper-backend/internal/export"
	"floormapper-backend/internal/libraries"
	"floormapper-backend/internal/models"
	"floormapper-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ExportHandler struct {
	planRepo  repo.PlanRepoInterface
	spaceRepo repo.SpaceRepoInterface
	driver    *export.Driver
}

func NewExportHandler(planRepo repo.PlanRepoInterface, spaceRepo repo.SpaceRepoInterface, driver *export.Driver) *ExportHandler {
	return &ExportHandler{
		planRepo:  planRepo,
		spaceRepo: spaceRepo,
		driver:    driver,
	}
}

// buildProject snapshots the plan and its spaces into the export aggregate.
// The export pipeline only ever sees this copy, never the live store.
func (h *ExportHandler) buildProject(planID uuid.UUID) (models.Project, bool) {
	plan, ok := h.planRepo.GetPlan(planID)
	if !ok {
		return models.Project{}, false
	}
	return models.Project{
		Name:        plan.ProjectName,
		ImageName:   plan.ImageName,
		ImageData:   plan.ImageData,
		FloorSpaces: h.spaceRepo.GetAllSpaces(planID),
	}, true
}

// ExportPlan generates the archive and delivers it as a download.
func (h *ExportHandler) ExportPlan(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}
	project, ok := h.buildProject(planID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Plan not found",
		})
	}

	data, err := h.driver.ExportProject(planID, project)
	if err != nil {
		libraries.Exports.WithLabelValues("error").Inc()
		return exportError(c, err)
	}
	libraries.Exports.WithLabelValues("success").Inc()

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.zip"`, project.Name))
	return c.Status(fiber.StatusOK).Send(data)
}

// SharePlan generates the archive, uploads it and returns a shareable link.
// This is the delivery path for clients without a regular download flow.
func (h *ExportHandler) SharePlan(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}
	project, ok := h.buildProject(planID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Plan not found",
		})
	}

	url, err := h.driver.ShareProject(c.UserContext(), planID, project)
	if err != nil {
		libraries.Exports.WithLabelValues("error").Inc()
		return exportError(c, err)
	}
	libraries.Exports.WithLabelValues("success").Inc()

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url":     url,
		"message": "Archive shared successfully",
	})
}

func exportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrMissingProjectName),
		errors.Is(err, models.ErrMissingImage):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, models.ErrExportInProgress):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		log.Println(err, "Error exporting plan")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export plan",
		})
	}
}
