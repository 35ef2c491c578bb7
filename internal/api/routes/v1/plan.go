package v1

import (
	"floormapper-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerPlans(r fiber.Router) {
	// Initialize handler
	planHandler := handlers.NewPlanHandler(planRepo, spaceRepo)

	// Register routes
	r.Get("/plans", planHandler.GetAllPlans)
	r.Post("/plans", planHandler.CreatePlan)
	r.Get("/plans/:planId", planHandler.GetPlanByID)
	r.Get("/plans/:planId/image", planHandler.GetPlanImage)
	r.Patch("/plans/:planId/image", planHandler.UpdatePlanImage)
	r.Patch("/plans/:planId", planHandler.UpdatePlan)
	r.Delete("/plans/:planId", planHandler.DeletePlan)
}
