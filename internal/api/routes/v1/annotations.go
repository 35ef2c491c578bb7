package v1

import (
	"floormapper-backend/internal/handlers"
	"floormapper-backend/internal/libraries"

	"github.com/gofiber/fiber/v2"
)

func registerAnnotations(r fiber.Router) {
	processor := handlers.NewAnnotationProcessor(rec)

	// Use the Hub-based WebSocket handler
	r.Get("/ws", libraries.WebSocketHandler(hub, processor))
}
