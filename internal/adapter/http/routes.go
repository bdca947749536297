package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register mounts the editor API on app. A nil gatherer leaves /metrics out.
func (h *Handler) Register(app *fiber.App, gatherer prometheus.Gatherer) {
	app.Get("/", h.Page)

	api := app.Group("/api")
	api.Get("/state", h.State)
	api.Get("/preview", h.Preview)

	api.Post("/fields/input", h.Input)
	api.Post("/fields/change", h.Change)

	api.Post("/sections/:section/items", h.AddItem)
	api.Delete("/sections/:section/items/:id", h.RemoveItem)
	api.Post("/sections/:section/items/:id/move", h.MoveItem)
	api.Put("/sections/:section/items/:id/fields/:field", h.EditItem)

	api.Post("/photo", h.UploadPhoto)
	api.Delete("/photo", h.RemovePhoto)

	api.Put("/template", h.SetTemplate)
	api.Put("/accent", h.SetAccentColor)
	api.Post("/zoom/:action", h.Zoom)

	api.Post("/save", h.Save)
	api.Post("/load", h.Load)
	api.Post("/import", h.Import)
	api.Get("/export/:format", h.Export)
	api.Get("/exports", h.RecentExports)

	api.Post("/shortcuts", h.Shortcut)
	api.Get("/notifications", h.Notifications)
	api.Delete("/notifications/:id", h.DismissNotification)

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}
