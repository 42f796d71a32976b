package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"votepulse/internal/analytics"
	"votepulse/internal/config"
	"votepulse/internal/identity"
	"votepulse/internal/ledger"
	"votepulse/internal/middleware"
)

// VoteHandler exposes the toggle and the vote-status read.
type VoteHandler struct {
	ledger    *ledger.Ledger
	analytics *analytics.Recorder
	catalog   *config.Catalog
}

// NewVoteHandler creates a new vote handler.
func NewVoteHandler(l *ledger.Ledger, a *analytics.Recorder, catalog *config.Catalog) *VoteHandler {
	return &VoteHandler{ledger: l, analytics: a, catalog: catalog}
}

// Toggle flips the calling visitor's vote on a project. On any store failure
// the vote is reported as failed so the client can revert its optimistic UI;
// a vote must never look successful while failing remotely. Analytics run
// after the ledger has committed and cannot fail the response.
func (h *VoteHandler) Toggle(c fiber.Ctx) error {
	key := c.Params("key")
	if !h.catalog.Has(key) {
		return jsonError(c, fiber.StatusNotFound, "unknown project")
	}

	visitor := middleware.Visitor(c)
	if visitor == identity.Unavailable {
		return jsonError(c, fiber.StatusForbidden,
			"We couldn't identify your browser, so your vote can't be saved.")
	}

	state, err := h.ledger.Toggle(c.Context(), key, visitor)
	if err != nil {
		if errors.Is(err, ledger.ErrNoIdentity) {
			return jsonError(c, fiber.StatusForbidden,
				"We couldn't identify your browser, so your vote can't be saved.")
		}
		return jsonError(c, fiber.StatusServiceUnavailable,
			"Could not save your vote. Please try again.")
	}

	h.analytics.OnVoteToggled(c.Context(), key, state.Count, state.Voted)

	return jsonSuccess(c, state)
}

// Status returns the current count and whether the calling visitor has a
// vote on the project.
func (h *VoteHandler) Status(c fiber.Ctx) error {
	key := c.Params("key")
	if !h.catalog.Has(key) {
		return jsonError(c, fiber.StatusNotFound, "unknown project")
	}

	visitor := middleware.Visitor(c)
	if visitor == identity.Unavailable {
		visitor = ""
	}

	state, err := h.ledger.Status(c.Context(), key, visitor)
	if err != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "store unavailable")
	}
	return jsonSuccess(c, state)
}
