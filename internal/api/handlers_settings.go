package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/cyclia/internal/store"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	handler.mu.Lock()
	defer handler.mu.Unlock()
	return c.JSON(handler.store.Settings())
}

// UpdateSettings merges a partial settings payload; absent fields keep
// their value.
func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	var patch store.SettingsPatch
	if err := c.BodyParser(&patch); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()

	settings, err := handler.store.UpdateSettings(patch)
	if err != nil {
		if store.IsValidationError(err) {
			return apiError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update settings")
	}

	handler.checkpoint()
	return c.JSON(settings)
}
