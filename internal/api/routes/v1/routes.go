package v1

import (
	"floormapper-backend/internal/libraries"
	"floormapper-backend/internal/reconciler"
	"floormapper-backend/internal/repo"

	"github.com/gofiber/fiber/v2"
)

// One in-memory store pair per process; plans and spaces live exactly as
// long as the server does.
var (
	planRepo  = repo.NewPlanRepository()
	spaceRepo = repo.NewSpaceRepository()
	hub       *libraries.Hub
	rec       *reconciler.Reconciler
)

func init() {
	// Initialize the Hub once
	hub = libraries.NewHub()
	// Start the Hub in a goroutine
	go hub.Run()

	rec = reconciler.New(spaceRepo, &libraries.SurfaceBroadcaster{Hub: hub})
}

func RegisterRoutes(r fiber.Router) {
	registerHealth(r)
	registerPlans(r)
	registerSpaces(r)
	registerExport(r)
	registerAnnotations(r)
}
