package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"votepulse/internal/analytics"
	"votepulse/internal/dashboard"
	"votepulse/internal/models"
	"votepulse/internal/store"
)

const maxTrendDays = 90

// DashboardHandler serves the aggregated display metrics.
type DashboardHandler struct {
	analytics *analytics.Recorder
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(a *analytics.Recorder) *DashboardHandler {
	return &DashboardHandler{analytics: a}
}

// Day returns hero metrics and the leaderboard for one day (today by
// default).
func (h *DashboardHandler) Day(c fiber.Ctx) error {
	date := c.Query("date", h.analytics.Today())
	if _, err := time.Parse(store.DateFormat, date); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	snap, err := h.analytics.Day(c.Context(), date)
	if err != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "store unavailable")
	}

	return jsonSuccess(c, fiber.Map{
		"date":        date,
		"hero":        dashboard.HeroMetrics(snap),
		"leaderboard": dashboard.Leaderboard(snap),
	})
}

// Trend returns a gapless per-day total-views series for the last N days
// ending today.
func (h *DashboardHandler) Trend(c fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days < 1 || days > maxTrendDays {
		return jsonError(c, fiber.StatusBadRequest, "days must be between 1 and 90")
	}

	today, _ := time.Parse(store.DateFormat, h.analytics.Today())
	from := today.AddDate(0, 0, -(days - 1))

	snaps := make([]models.DaySnapshot, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i).Format(store.DateFormat)
		snap, err := h.analytics.Day(c.Context(), date)
		if err != nil {
			return jsonError(c, fiber.StatusServiceUnavailable, "store unavailable")
		}
		snaps = append(snaps, snap)
	}

	return jsonSuccess(c, dashboard.Trend(snaps, from, days))
}
