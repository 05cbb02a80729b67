package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// MonthStatus returns the day-status map the calendar needs to paint one
// month, plus the forecast the statuses were derived from.
func (handler *Handler) MonthStatus(c *fiber.Ctx) error {
	year, month, err := parseMonthParams(c.Params("year"), c.Params("month"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid year or month")
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()

	return c.JSON(fiber.Map{
		"year":     year,
		"month":    int(month),
		"days":     handler.store.DayStatusForMonth(year, month),
		"forecast": handler.store.Forecast(handler.lookahead),
	})
}

// maxForecastMonths caps the ?months override: the forecast grows
// linearly with the lookahead.
const maxForecastMonths = 24

// Forecast returns the prediction sequence; ?months overrides the
// configured lookahead, clamped to maxForecastMonths.
func (handler *Handler) Forecast(c *fiber.Ctx) error {
	lookahead := handler.lookahead
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return apiError(c, fiber.StatusBadRequest, "invalid months")
		}
		lookahead = parsed
	}
	if lookahead > maxForecastMonths {
		lookahead = maxForecastMonths
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()
	return c.JSON(fiber.Map{"forecast": handler.store.Forecast(lookahead)})
}

// Intervals exposes the derived period intervals.
func (handler *Handler) Intervals(c *fiber.Ctx) error {
	handler.mu.Lock()
	defer handler.mu.Unlock()
	return c.JSON(fiber.Map{"intervals": handler.store.Intervals()})
}
