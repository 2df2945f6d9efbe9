package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"keyword-radar/internal/service"
	"keyword-radar/pkg/analyzer"
	"keyword-radar/pkg/logger"
	"keyword-radar/pkg/metrics"
	"keyword-radar/pkg/storage"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
	maxSentences        = 1000
)

type Controller struct {
	analysis service.AnalysisService
	history  service.HistoryService
	config   ControllerConfig
	started  time.Time
	log      *logger.Logger
}

type ControllerConfig struct {
	// AnalyzeTimeout bounds one /analyze request; 0 means no bound.
	AnalyzeTimeout time.Duration
	BodyLimit      int
}

// AnalyzeRequest is the body of POST /analyze. Text is split into lines and
// appended to Sentences. Nil overrides keep the configured options.
type AnalyzeRequest struct {
	Sentences           []string `json:"sentences"`
	Text                string   `json:"text"`
	SaturationThreshold *float64 `json:"saturation_threshold"`
	MinMonthlySearch    *int     `json:"min_monthly_search"`
	Limit               *int     `json:"limit"`
	TopK                *int     `json:"top_k"`
}

type StatusResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
	Runs      int    `json:"runs"`
}

func NewController(analysis service.AnalysisService, history service.HistoryService, config ControllerConfig) *Controller {
	return &Controller{
		analysis: analysis,
		history:  history,
		config:   config,
		started:  time.Now(),
		log:      logger.GetLogger().WithField("component", "http"),
	}
}

// App builds the fiber application with every route registered
func (c *Controller) App() *fiber.App {
	cfg := fiber.Config{
		AppName:      "keyword-radar",
		ErrorHandler: c.errorHandler,
	}
	if c.config.BodyLimit > 0 {
		cfg.BodyLimit = c.config.BodyLimit
	}

	app := fiber.New(cfg)
	app.Use(recover.New())
	c.Register(app)
	return app
}

// Register mounts the routes on app
func (c *Controller) Register(app *fiber.App) {
	app.Get("/health", c.Health)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Post("/analyze", c.Analyze)
	app.Get("/history", c.ListHistory)
	app.Get("/history/:id", c.GetHistory)
}

func (c *Controller) Health(ctx *fiber.Ctx) error {
	runs := 0
	if c.history != nil {
		if n, err := c.history.CountRuns(ctx.UserContext()); err == nil {
			runs = n
		}
	}
	return jsonSuccess(ctx, StatusResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(c.started).Round(time.Second).String(),
		Runs:      runs,
	})
}

func (c *Controller) Analyze(ctx *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	lines := append([]string(nil), req.Sentences...)
	if req.Text != "" {
		lines = append(lines, strings.Split(req.Text, "\n")...)
	}
	if len(lines) > maxSentences {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "too many sentences")
	}

	opts := c.analysis.DefaultOptions()
	if req.SaturationThreshold != nil {
		opts.SaturationThreshold = *req.SaturationThreshold
	}
	if req.MinMonthlySearch != nil {
		opts.MinMonthlySearch = *req.MinMonthlySearch
	}
	if req.Limit != nil {
		opts.Limit = *req.Limit
	}
	if req.TopK != nil {
		opts.TopK = *req.TopK
	}

	runCtx := ctx.UserContext()
	if c.config.AnalyzeTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, c.config.AnalyzeTimeout)
		defer cancel()
	}

	report, err := c.analysis.Analyze(runCtx, lines, opts)
	if err != nil {
		if errors.Is(err, analyzer.ErrInvalidOptions) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return jsonSuccess(ctx, report)
}

func (c *Controller) ListHistory(ctx *fiber.Ctx) error {
	if c.history == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "history is disabled")
	}

	limit := ctx.QueryInt("limit", defaultHistoryLimit)
	if limit <= 0 || limit > maxHistoryLimit {
		return fiber.NewError(fiber.StatusBadRequest, "limit must be between 1 and 200")
	}

	runs, err := c.history.ListRuns(ctx.UserContext(), limit)
	if err != nil {
		return err
	}
	return jsonSuccess(ctx, runs)
}

func (c *Controller) GetHistory(ctx *fiber.Ctx) error {
	if c.history == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "history is disabled")
	}

	report, err := c.history.LoadRun(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "run not found")
		}
		return err
	}
	return jsonSuccess(ctx, report)
}

func (c *Controller) errorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		c.log.WithError(err).WithField("path", ctx.Path()).Error("Request failed")
	}

	return jsonError(ctx, code, message)
}

func jsonSuccess(ctx *fiber.Ctx, data interface{}) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func jsonError(ctx *fiber.Ctx, code int, message string) error {
	return ctx.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
