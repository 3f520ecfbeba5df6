package handlers

import (
	"time"

	"toytopia/internal/services"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports liveness and store health.
type HealthHandler struct {
	service *services.ToyService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(service *services.ToyService) *HealthHandler {
	return &HealthHandler{service: service}
}

// RegisterRoutes registers the root liveness and health routes.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleRoot)
	router.Get("/health", h.HandleHealth)
}

// HandleRoot answers with a plain text liveness message.
func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.SendString("Server is Running!")
}

// HandleHealth pings the store.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	status, store, code := "healthy", "ok", fiber.StatusOK
	if err := h.service.Ping(c.UserContext()); err != nil {
		status, store, code = "unhealthy", err.Error(), fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
		"store":  store,
	})
}
