package v1

import (
	"floormapper-backend/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func registerSpaces(r fiber.Router) {
	spaceHandler := handlers.NewSpaceHandler(rec, planRepo, spaceRepo)

	r.Get("/plans/:planId/spaces", spaceHandler.GetAllSpaces)
	// form confirmations against the plan's staged draft/edit
	r.Post("/plans/:planId/spaces", spaceHandler.ConfirmNewSpace)
	r.Put("/plans/:planId/spaces", spaceHandler.ConfirmUpdateSpace)
	r.Delete("/plans/:planId/spaces/:spaceId", spaceHandler.DeleteSpace)
}
