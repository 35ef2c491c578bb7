package handlers

import (
	"errors"
	"log"
	"mime/multipart"

	"floormapper-backend/internal/models"
	"floormapper-backend/internal/reconciler"
	"floormapper-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SpaceHandler struct {
	rec       *reconciler.Reconciler
	planRepo  repo.PlanRepoInterface
	spaceRepo repo.SpaceRepoInterface
}

func NewSpaceHandler(rec *reconciler.Reconciler, planRepo repo.PlanRepoInterface, spaceRepo repo.SpaceRepoInterface) *SpaceHandler {
	return &SpaceHandler{
		rec:       rec,
		planRepo:  planRepo,
		spaceRepo: spaceRepo,
	}
}

// parseSpaceForm reads the new-space/update-space form: name, desc, color and
// any number of attached files. Attachments are read one after another.
func parseSpaceForm(form *multipart.Form) (reconciler.SpaceForm, error) {
	out := reconciler.SpaceForm{}

	if v := form.Value["name"]; len(v) > 0 {
		out.Name = v[0]
	}
	if v := form.Value["desc"]; len(v) > 0 {
		out.Description = v[0]
	}
	if v := form.Value["color"]; len(v) > 0 {
		out.Color = v[0]
	}

	files := form.File["files"]
	out.Attachments = make([]models.Attachment, 0, len(files))
	for _, fh := range files {
		data, err := readFormFile(fh)
		if err != nil {
			return out, err
		}
		out.Attachments = append(out.Attachments, models.Attachment{
			Name: fh.Filename,
			Data: data,
		})
	}
	return out, nil
}

func (h *SpaceHandler) planExists(c *fiber.Ctx) (uuid.UUID, bool) {
	planID, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
		return uuid.Nil, false
	}
	if _, ok := h.planRepo.GetPlan(planID); !ok {
		c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Plan not found",
		})
		return uuid.Nil, false
	}
	return planID, true
}

// function to list the floor spaces of a plan
func (h *SpaceHandler) GetAllSpaces(c *fiber.Ctx) error {
	planID, ok := h.planExists(c)
	if !ok {
		return nil
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"spaces": h.spaceRepo.GetAllSpaces(planID),
	})
}

// ConfirmNewSpace is the "new space" form submit: it commits the plan's
// current draft annotation together with the form fields.
func (h *SpaceHandler) ConfirmNewSpace(c *fiber.Ctx) error {
	planID, ok := h.planExists(c)
	if !ok {
		return nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid form data",
		})
	}
	spaceForm, err := parseSpaceForm(form)
	if err != nil {
		log.Println(err, "Error reading attachment upload")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read attachments",
		})
	}

	space, err := h.rec.ConfirmNew(planID, spaceForm)
	if err != nil {
		return spaceError(c, err, "Failed to create floor space")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"space":   space,
		"message": "Floor space created successfully",
	})
}

// ConfirmUpdateSpace is the "update space" form submit; the target id is the
// annotation currently being edited on that plan.
func (h *SpaceHandler) ConfirmUpdateSpace(c *fiber.Ctx) error {
	planID, ok := h.planExists(c)
	if !ok {
		return nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid form data",
		})
	}
	spaceForm, err := parseSpaceForm(form)
	if err != nil {
		log.Println(err, "Error reading attachment upload")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read attachments",
		})
	}

	space, err := h.rec.ConfirmUpdate(planID, spaceForm)
	if err != nil {
		return spaceError(c, err, "Failed to update floor space")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"space":   space,
		"message": "Floor space updated successfully",
	})
}

// function to delete a floor space and its overlay
func (h *SpaceHandler) DeleteSpace(c *fiber.Ctx) error {
	planID, ok := h.planExists(c)
	if !ok {
		return nil
	}

	_, found := h.rec.DeleteSpace(planID, c.Params("spaceId"))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"found":   found,
		"message": "Floor space deleted",
	})
}

// spaceError maps reconciler/store failures onto HTTP responses. User input
// problems come back 400, desynchronization between overlay and store 409.
func spaceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, models.ErrMissingSpaceName):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, models.ErrNoActiveDraft),
		errors.Is(err, models.ErrDuplicateID),
		errors.Is(err, models.ErrOrphanAnnotation),
		errors.Is(err, models.ErrSpaceNotFound):
		log.Println(err, "Annotation state desynchronized")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		log.Println(err, fallback)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fallback,
		})
	}
}
