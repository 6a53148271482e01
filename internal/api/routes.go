package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	entries := api.Group("/entries", handler.AuthRequired)
	entries.Get("", handler.ListEntries)
	entries.Get("/:date", handler.GetEntry)
	entries.Post("/:date", handler.SaveEntry)
	entries.Delete("/:date", handler.DeleteEntry)

	cycles := api.Group("/cycles", handler.AuthRequired)
	cycles.Get("", handler.GetCycles)
	cycles.Post("/compute", handler.ComputeCycles)

	api.Get("/calendar", handler.AuthRequired, handler.GetCalendar)
	api.Get("/predictions", handler.AuthRequired, handler.GetPredictions)
	api.Get("/today", handler.AuthRequired, handler.GetToday)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
