package handlers

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"votepulse/internal/analytics"
	"votepulse/internal/config"
	"votepulse/internal/ledger"
)

// confirmTTL bounds how long a reset confirmation token stays valid.
const confirmTTL = 2 * time.Minute

// AdminHandler exposes the destructive "reset today" operation as a two-step
// flow: request a confirmation token, then confirm with it. The reset zeroes
// every counter for the current date and overwrites every voter flag with
// "false"; nothing is deleted.
type AdminHandler struct {
	ledger    *ledger.Ledger
	analytics *analytics.Recorder
	catalog   *config.Catalog

	mu      sync.Mutex
	pending map[string]time.Time
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(l *ledger.Ledger, a *analytics.Recorder, catalog *config.Catalog) *AdminHandler {
	return &AdminHandler{
		ledger:    l,
		analytics: a,
		catalog:   catalog,
		pending:   make(map[string]time.Time),
	}
}

// RequestReset issues a one-time confirmation token. Nothing is modified
// here.
func (h *AdminHandler) RequestReset(c fiber.Ctx) error {
	token := uuid.NewString()

	h.mu.Lock()
	h.pending[token] = time.Now().Add(confirmTTL)
	h.mu.Unlock()

	return jsonSuccess(c, fiber.Map{
		"confirm_token": token,
		"expires_in":    int(confirmTTL.Seconds()),
		"warning":       "Confirming will zero today's counters and all vote state. This cannot be undone.",
	})
}

// ConfirmReset performs the reset if the supplied token is valid and fresh.
func (h *AdminHandler) ConfirmReset(c fiber.Ctx) error {
	var body struct {
		ConfirmToken string `json:"confirm_token"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil || body.ConfirmToken == "" {
		return jsonError(c, fiber.StatusBadRequest, "confirm_token is required")
	}

	if !h.consumeToken(body.ConfirmToken) {
		return jsonError(c, fiber.StatusConflict, "unknown or expired confirmation token")
	}

	date := h.analytics.Today()
	projects := h.catalog.Keys()

	for _, project := range projects {
		if err := h.ledger.Reset(c.Context(), project); err != nil {
			slog.Error("vote reset failed", "project", project, "error", err)
			return jsonError(c, fiber.StatusServiceUnavailable, "reset incomplete; retry")
		}
	}
	if err := h.analytics.ResetDay(c.Context(), date, projects); err != nil {
		slog.Error("analytics reset failed", "date", date, "error", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "reset incomplete; retry")
	}

	slog.Info("daily counters reset", "date", date, "projects", len(projects))
	return jsonSuccess(c, fiber.Map{"date": date, "reset": true})
}

// consumeToken validates and invalidates a confirmation token in one step.
func (h *AdminHandler) consumeToken(token string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	deadline, ok := h.pending[token]
	if !ok {
		return false
	}
	delete(h.pending, token)
	return time.Now().Before(deadline)
}
