package main

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v3"

	"github.com/tigerkid/repoinsight/internal/api"
	"github.com/tigerkid/repoinsight/internal/config"
	"github.com/tigerkid/repoinsight/internal/embedding"
	"github.com/tigerkid/repoinsight/internal/llm"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	embedder := embedding.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel)

	svc := api.NewService(cfg, llmClient, embedder, logger)

	app := fiber.New(fiber.Config{
		AppName: "RepoInsight API",
	})

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "repoinsight-backend",
		})
	})

	api.SetupRoutes(app, api.NewHandler(svc))

	logger.Info("starting repoinsight backend", slog.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
