package v1

import (
	"floormapper-backend/internal/export"
	"floormapper-backend/internal/handlers"
	"floormapper-backend/internal/libraries"

	"github.com/gofiber/fiber/v2"
)

func registerExport(r fiber.Router) {
	// the GCS client exists only when a share bucket is configured
	var uploader export.ShareUploader
	if client := libraries.GetGCSClient(); client != nil {
		uploader = client
	}

	exportHandler := handlers.NewExportHandler(planRepo, spaceRepo, export.NewDriver(uploader))

	r.Get("/plans/:planId/export", exportHandler.ExportPlan)
	r.Post("/plans/:planId/export/share", exportHandler.SharePlan)
}
