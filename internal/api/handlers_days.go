package api

import "github.com/gofiber/fiber/v2"

// TogglePeriodDay cycles the day's intensity one step and reports the new
// level.
func (handler *Handler) TogglePeriodDay(c *fiber.Ctx) error {
	date, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()

	level, err := handler.store.TogglePeriodDay(date)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	handler.checkpoint()
	return c.JSON(fiber.Map{"date": date, "level": level})
}

type sexEventRequest struct {
	Note string `json:"note"`
}

// UpsertSexEvent records (or re-notes) the day's sex event.
func (handler *Handler) UpsertSexEvent(c *fiber.Ctx) error {
	date, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	var payload sexEventRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid payload")
		}
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()

	if err := handler.store.AddSex(date, payload.Note); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	handler.checkpoint()
	return c.JSON(fiber.Map{"date": date, "recorded": true})
}

// DeleteSexEvent removes the day's sex event; deleting an absent event is
// a no-op reported as removed=false.
func (handler *Handler) DeleteSexEvent(c *fiber.Ctx) error {
	date, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()

	removed, err := handler.store.RemoveSex(date)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	if removed {
		handler.checkpoint()
	}
	return c.JSON(fiber.Map{"date": date, "removed": removed})
}
