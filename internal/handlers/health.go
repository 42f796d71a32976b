package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"votepulse/internal/store"
)

// HealthHandler reports whether the aggregate store is reachable.
type HealthHandler struct {
	store store.Store
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(s store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

// Check probes the store with a read. An absent probe path is a healthy
// outcome; only a transport-level failure is unhealthy.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	_, err := h.store.Read(c.Context(), "health/probe")
	if err != nil && !errors.Is(err, store.ErrAbsent) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"store":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "healthy"})
}
