package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/tigerkid/repoinsight/internal/models"
)

const (
	guideFileName   = "QUICK_START_GUIDE.md"
	apiDocsFileName = "API_DOCS.md"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// conflictOrNotFound maps missing repositories and sessions to 404; every
// other service refusal is a readiness conflict.
func conflictOrNotFound(c fiber.Ctx, err error) error {
	status := 409
	if errors.Is(err, ErrNotFound) {
		status = 404
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// AnalyzeRepository validates the URL and starts analysis in the background.
func (h *Handler) AnalyzeRepository(c fiber.Ctx) error {
	var req AnalyzeRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	repo := h.svc.Analyze(req.URL)
	return c.Status(202).JSON(repo)
}

func (h *Handler) ListRepositories(c fiber.Ctx) error {
	return c.JSON(h.svc.ListRepositories())
}

func (h *Handler) GetRepository(c fiber.Ctx) error {
	repo, ok := h.svc.GetRepository(c.Params("name"))
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "repository not found"})
	}
	return c.JSON(repo)
}

func (h *Handler) GetFileTree(c fiber.Ctx) error {
	depth := fiber.Query[int](c, "depth", 3)
	if depth < 1 || depth > 10 {
		depth = 3
	}

	tree, err := h.svc.FileTree(c.Params("name"), depth)
	if err != nil {
		return conflictOrNotFound(c, err)
	}
	return c.JSON(fiber.Map{"tree": tree})
}

func (h *Handler) GenerateGuide(c fiber.Ctx) error {
	if err := h.svc.GenerateGuide(c.Params("name")); err != nil {
		return conflictOrNotFound(c, err)
	}
	return c.JSON(fiber.Map{"status": "generation started"})
}

func (h *Handler) GetGuide(c fiber.Ctx) error {
	artifact, err := h.svc.Guide(c.Params("name"))
	if err != nil {
		return conflictOrNotFound(c, err)
	}
	return c.JSON(artifact)
}

func (h *Handler) DownloadGuide(c fiber.Ctx) error {
	artifact, err := h.svc.Guide(c.Params("name"))
	if err != nil {
		return conflictOrNotFound(c, err)
	}
	return sendMarkdown(c, artifact, guideFileName)
}

func (h *Handler) GenerateAPIDocs(c fiber.Ctx) error {
	if err := h.svc.GenerateAPIDocs(c.Params("name")); err != nil {
		return conflictOrNotFound(c, err)
	}
	return c.JSON(fiber.Map{"status": "generation started"})
}

func (h *Handler) GetAPIDocs(c fiber.Ctx) error {
	artifact, err := h.svc.APIDocs(c.Params("name"))
	if err != nil {
		return conflictOrNotFound(c, err)
	}
	return c.JSON(artifact)
}

func (h *Handler) DownloadAPIDocs(c fiber.Ctx) error {
	artifact, err := h.svc.APIDocs(c.Params("name"))
	if err != nil {
		return conflictOrNotFound(c, err)
	}
	return sendMarkdown(c, artifact, apiDocsFileName)
}

func sendMarkdown(c fiber.Ctx, artifact models.Artifact, filename string) error {
	if artifact.Status != models.ArtifactReady {
		return c.Status(409).JSON(fiber.Map{"error": "document is not ready for download"})
	}

	c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(artifact.Content)
}

func (h *Handler) Chat(c fiber.Ctx) error {
	var req ChatRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	resp, err := h.svc.Chat(c.Context(), req)
	if err != nil {
		return conflictOrNotFound(c, err)
	}
	return c.JSON(resp)
}

func (h *Handler) EndSession(c fiber.Ctx) error {
	if err := h.svc.EndSession(c.Params("sessionId")); err != nil {
		return conflictOrNotFound(c, err)
	}
	return c.JSON(fiber.Map{"status": "session ended"})
}
