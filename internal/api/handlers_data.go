package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/cyclia/internal/models"
)

// ImportLegacy performs the one-time migration from the old
// start+duration period format. Conflicting days are skipped, never
// overwritten; the report carries both counts.
func (handler *Handler) ImportLegacy(c *fiber.Ctx) error {
	var records []models.LegacyPeriod
	if err := c.BodyParser(&records); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()

	report, err := handler.store.MigrateLegacy(records)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid legacy record")
	}

	if report.Imported > 0 {
		handler.checkpoint()
	}
	return c.JSON(report)
}

// Export returns the full snapshot, periods projection included.
func (handler *Handler) Export(c *fiber.Ctx) error {
	handler.mu.Lock()
	defer handler.mu.Unlock()
	return c.JSON(handler.store.Snapshot())
}

// ClearData resets the three collections to defaults. Undoable.
func (handler *Handler) ClearData(c *fiber.Ctx) error {
	handler.mu.Lock()
	defer handler.mu.Unlock()

	handler.store.ClearAll()
	handler.checkpoint()
	return c.JSON(fiber.Map{"cleared": true})
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
