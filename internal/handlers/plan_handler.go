package handlers

import (
	"io"
	"log"
	"mime/multipart"

	"floormapper-backend/internal/models"
	"floormapper-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// for simple crud operations service layer is not required
type PlanHandler struct {
	planRepo  repo.PlanRepoInterface
	spaceRepo repo.SpaceRepoInterface
}

func NewPlanHandler(planRepo repo.PlanRepoInterface, spaceRepo repo.SpaceRepoInterface) *PlanHandler {
	return &PlanHandler{
		planRepo:  planRepo,
		spaceRepo: spaceRepo,
	}
}

// readFormFile reads one uploaded file fully into memory. Attachments and
// plan images are small form uploads, nothing here streams.
func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// function to create a plan from a project name and an optional image upload
func (h *PlanHandler) CreatePlan(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid form data",
		})
	}

	plan := &models.Plan{}
	if names := form.Value["project_name"]; len(names) > 0 {
		plan.ProjectName = names[0]
	}

	if files := form.File["image"]; len(files) > 0 {
		file := files[0]
		data, err := readFormFile(file)
		if err != nil {
			log.Println(err, "Error reading image upload")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to read image",
			})
		}
		plan.ImageName = file.Filename
		plan.ImageType = file.Header.Get("Content-Type")
		plan.ImageData = data
	}

	id, err := h.planRepo.CreatePlan(plan)
	if err != nil {
		log.Println(err, "Error creating plan")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create plan",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      id.String(),
		"message": "Plan created successfully",
	})
}

// function to get all plans
func (h *PlanHandler) GetAllPlans(c *fiber.Ctx) error {
	plans := h.planRepo.GetAllPlans()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"plans": plans,
	})
}

// function to get one plan with its floor spaces
func (h *PlanHandler) GetPlanByID(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	plan, ok := h.planRepo.GetPlan(planID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Plan not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"plan":   plan,
		"spaces": h.spaceRepo.GetAllSpaces(planID),
	})
}

// function to serve the plan image so the editor can display it
func (h *PlanHandler) GetPlanImage(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	plan, ok := h.planRepo.GetPlan(planID)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Plan not found",
		})
	}
	if len(plan.ImageData) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Plan has no image",
		})
	}

	if plan.ImageType != "" {
		c.Set(fiber.HeaderContentType, plan.ImageType)
	}
	return c.Status(fiber.StatusOK).Send(plan.ImageData)
}

// function to replace the plan image
func (h *PlanHandler) UpdatePlanImage(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid form data",
		})
	}
	files := form.File["image"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image provided",
		})
	}

	file := files[0]
	data, err := readFormFile(file)
	if err != nil {
		log.Println(err, "Error reading image upload")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read image",
		})
	}

	plan, err := h.planRepo.UpdatePlanImage(planID, file.Filename, file.Header.Get("Content-Type"), data)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Plan not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"plan":    plan,
		"message": "Image updated successfully",
	})
}

// function to update plan attributes (currently the project name)
func (h *PlanHandler) UpdatePlan(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	var dto struct {
		ProjectName string `json:"project_name"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if dto.ProjectName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": models.ErrMissingProjectName.Error(),
		})
	}

	plan, err := h.planRepo.UpdateProjectName(planID, dto.ProjectName)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Plan not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"plan":    plan,
		"message": "Plan updated successfully",
	})
}

// function to delete a plan and every floor space on it
func (h *PlanHandler) DeletePlan(c *fiber.Ctx) error {
	planID, err := uuid.Parse(c.Params("planId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid plan ID",
		})
	}

	if !h.planRepo.DeletePlan(planID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Plan not found",
		})
	}
	h.spaceRepo.ClearPlan(planID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Plan deleted successfully",
	})
}
