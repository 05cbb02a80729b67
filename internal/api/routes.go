package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api", handler.LockRequired)

	auth := api.Group("/auth")
	auth.Post("/unlock", handler.Unlock)
	auth.Post("/lock", handler.Lock)

	api.Get("/calendar/:year/:month", handler.MonthStatus)
	api.Get("/forecast", handler.Forecast)
	api.Get("/intervals", handler.Intervals)

	api.Post("/days/:date/toggle", handler.TogglePeriodDay)

	api.Put("/sex/:date", handler.UpsertSexEvent)
	api.Delete("/sex/:date", handler.DeleteSexEvent)

	api.Get("/settings", handler.GetSettings)
	api.Put("/settings", handler.UpdateSettings)

	api.Post("/history/undo", handler.Undo)
	api.Post("/history/redo", handler.Redo)

	api.Post("/import/legacy", handler.ImportLegacy)
	api.Get("/export", handler.Export)
	api.Post("/data/clear", handler.ClearData)
}
