package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sitegen/internal/builder"
	"sitegen/internal/errs"
	"sitegen/internal/sources"
	"sitegen/internal/utils"
)

// Runner runs the site pipeline. *builder.Builder implements it.
type Runner interface {
	Run(ctx context.Context, query string) (*builder.Result, error)
}

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	runner Runner
	loader *sources.Loader
	logger *slog.Logger
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(runner Runner, loader *sources.Loader, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &APIHandler{runner: runner, loader: loader, logger: logger}
}

// --- Structs for API Requests/Responses ---

type GenerateRequest struct {
	Query string `json:"query" binding:"required"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Stage     string `json:"stage,omitempty"`
	Transient bool   `json:"transient,omitempty"`
}

// --- API Handlers ---

// POST /site/generate
func (h *APIHandler) GenerateSite(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query must not be blank"})
		return
	}

	h.logger.Info("received generation request", "query", req.Query)

	res, err := h.runner.Run(c.Request.Context(), req.Query)
	if err != nil {
		h.logger.Error("site generation failed", "query", req.Query, "error", err)
		c.JSON(StatusFor(err), errorResponse(err))
		return
	}

	h.logger.Info("site generated", "run_id", res.RunID, "pages", len(res.Pages), "tasks", len(res.Tasks))
	c.JSON(http.StatusCreated, res)
}

// GET /site/style-guide
func (h *APIHandler) GetStyleGuide(c *gin.Context) {
	h.serveSource(c, h.loader.StyleGuidePath())
}

// GET /site/layout-template
func (h *APIHandler) GetLayoutTemplate(c *gin.Context) {
	h.serveSource(c, h.loader.LayoutTemplatePath())
}

func (h *APIHandler) serveSource(c *gin.Context, path string) {
	data, err := h.loader.Raw(path)
	if err != nil {
		c.JSON(StatusFor(err), errorResponse(err))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// StatusFor maps a pipeline error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, context.Canceled):
		return 499
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	switch errs.KindOf(err) {
	case errs.KindShapeMismatch:
		return http.StatusBadGateway
	case errs.KindUpstreamFailure:
		if utils.IsTransient(err) {
			return http.StatusServiceUnavailable
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(err error) ErrorResponse {
	resp := ErrorResponse{
		Error:     err.Error(),
		Stage:     errs.StageOf(err),
		Transient: utils.IsTransient(err),
	}
	if kind := errs.KindOf(err); kind != errs.KindUnknown {
		resp.Kind = kind.String()
	}
	return resp
}
