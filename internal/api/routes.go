package api

import (
	"github.com/gofiber/fiber/v3"
)

func SetupRoutes(app *fiber.App, h *Handler) {
	api := app.Group("/api")

	api.Post("/chat", h.Chat)
	api.Delete("/chat/:sessionId", h.EndSession)

	repos := api.Group("/repositories")
	repos.Get("/", h.ListRepositories)
	repos.Post("/", h.AnalyzeRepository)
	repos.Get("/:name", h.GetRepository)
	repos.Get("/:name/tree", h.GetFileTree)

	repos.Post("/:name/guide", h.GenerateGuide)
	repos.Get("/:name/guide", h.GetGuide)
	repos.Get("/:name/guide/download", h.DownloadGuide)

	repos.Post("/:name/apidocs", h.GenerateAPIDocs)
	repos.Get("/:name/apidocs", h.GetAPIDocs)
	repos.Get("/:name/apidocs/download", h.DownloadAPIDocs)
}
