package handlers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"votepulse/internal/analytics"
	"votepulse/internal/config"
)

// AnalyticsHandler ingests activity events: visits, project views, and the
// page-unload session beacon. All of these are best-effort; failures are
// logged inside the recorder and invisible to the client.
type AnalyticsHandler struct {
	analytics *analytics.Recorder
	catalog   *config.Catalog
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(a *analytics.Recorder, catalog *config.Catalog) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: a, catalog: catalog}
}

// Visit records a site visit.
func (h *AnalyticsHandler) Visit(c fiber.Ctx) error {
	h.analytics.RecordVisit(c.Context())
	return c.SendStatus(fiber.StatusNoContent)
}

// View records a project view.
func (h *AnalyticsHandler) View(c fiber.Ctx) error {
	key := c.Params("key")
	if !h.catalog.Has(key) {
		return jsonError(c, fiber.StatusNotFound, "unknown project")
	}
	h.analytics.RecordView(c.Context(), key)
	return c.SendStatus(fiber.StatusNoContent)
}

// Beacon accepts the unload-time session report. The page may already be
// tearing down, so the response goes out immediately and the store write
// runs detached with its own context; there is no confirmation of delivery
// and no retry.
func (h *AnalyticsHandler) Beacon(c fiber.Ctx) error {
	var body struct {
		Project string `json:"project"`
		Seconds int    `json:"seconds"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if !h.catalog.Has(body.Project) || body.Seconds <= 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}

	go h.analytics.RecordSession(context.Background(), body.Project, body.Seconds)

	return c.SendStatus(fiber.StatusNoContent)
}
