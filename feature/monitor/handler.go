package monitor

import (
	"context"
	"errors"

	"craft-sleuth/core/logger"
	"craft-sleuth/core/reconcile"
	"craft-sleuth/feature/posts"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PostReader is the read side of the tracked posts store.
type PostReader interface {
	List(ctx context.Context, limit int) ([]reconcile.TrackedPost, error)
	Get(ctx context.Context, postID string) (*reconcile.TrackedPost, error)
	Count(ctx context.Context) (int64, error)
}

// Handler serves the status API.
type Handler struct {
	runner *Runner
	posts  PostReader
	runCtx context.Context
	logger *zap.Logger
}

// NewHandler creates a handler. Runs triggered over HTTP use runCtx so a
// client disconnect does not abort them.
func NewHandler(runner *Runner, posts PostReader, runCtx context.Context, logger *zap.Logger) *Handler {
	return &Handler{runner: runner, posts: posts, runCtx: runCtx, logger: logger}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
	app.Get("/posts", h.HandleListPosts)
	app.Get("/posts/:id", h.HandleGetPost)
	app.Get("/runs/last", h.HandleLastRun)
	app.Post("/runs", h.HandleTriggerRun)
}

// HandleHealth reports liveness.
// @Summary Health
// @Description Reports that the bot is up.
// @Tags status
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleListPosts lists tracked posts.
// @Summary List Tracked Posts
// @Description Returns tracked posts, oldest first.
// @Tags posts
// @Produce json
// @Param limit query int false "Maximum number of posts (0 = all)"
// @Success 200 {object} map[string]interface{} "Posts and total"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /posts [get]
func (h *Handler) HandleListPosts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must not be negative"})
	}

	list, err := h.posts.List(c.UserContext(), limit)
	if err != nil {
		l.Error("Failed to list posts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	total, err := h.posts.Count(c.UserContext())
	if err != nil {
		l.Error("Failed to count posts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"posts": list, "total": total})
}

// HandleGetPost returns one tracked post.
// @Summary Get Tracked Post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} reconcile.TrackedPost
// @Failure 404 {object} map[string]string "Not Found"
// @Router /posts/{id} [get]
func (h *Handler) HandleGetPost(c *fiber.Ctx) error {
	post, err := h.posts.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, posts.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Failed to get post", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(post)
}

// HandleLastRun returns the status of the latest run.
// @Summary Last Run
// @Tags runs
// @Produce json
// @Success 200 {object} RunStatus
// @Router /runs/last [get]
func (h *Handler) HandleLastRun(c *fiber.Ctx) error {
	return c.JSON(h.runner.Status())
}

// HandleTriggerRun runs a reconciliation cycle and returns its report.
// @Summary Trigger Run
// @Description Runs ingestion and sweep now. Joins a run already in progress.
// @Tags runs
// @Produce json
// @Success 200 {object} reconcile.Report
// @Failure 500 {object} map[string]interface{} "Run failed"
// @Router /runs [post]
func (h *Handler) HandleTriggerRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("Run triggered over HTTP")

	report, err := h.runner.Run(h.runCtx)
	if err != nil {
		l.Error("Triggered run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "report": report})
	}
	return c.JSON(report)
}
