package comparison

import (
	"errors"
	"strings"

	"asset-lists/core/assetlist"
	engine "asset-lists/core/comparison"
	"asset-lists/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the comparison routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/comparison")
	group.Post("/", h.HandleRun)
	group.Get("/lists", h.HandleLists)
}

// RunResponse is the body returned by a comparison run.
type RunResponse struct {
	Steps  []engine.StepResult   `json:"steps"`
	Count  int                   `json:"count"`
	Assets []assetlist.JSONAsset `json:"assets,omitempty"`
}

// ErrorResponse describes a failed request. Step fields are set when a step failed.
type ErrorResponse struct {
	Error     string              `json:"error"`
	Kind      string              `json:"kind,omitempty"`
	Step      int                 `json:"step,omitempty"`
	Output    string              `json:"output,omitempty"`
	Phase     string              `json:"phase,omitempty"`
	Completed []engine.StepResult `json:"completed,omitempty"`
}

// HandleRun runs a comparison definition.
// @Summary Run Comparison
// @Description Runs the steps of a comparison definition (JSON, YAML or TOML body) and saves every non-token output. Steps run in order; outputs saved before a failing step are kept.
// @Tags comparison
// @Accept json
// @Accept x-yaml
// @Produce json
// @Param definition body engine.Definition true "Comparison definition"
// @Param include query string false "Set to 'output' to return the final list"
// @Success 200 {object} RunResponse
// @Failure 400 {object} ErrorResponse "Invalid definition, unbound token, bad pattern or locator outside the list root"
// @Failure 404 {object} ErrorResponse "Input list not found"
// @Failure 500 {object} ErrorResponse "Load or save failure"
// @Router /comparison [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	def, err := engine.ParseDefinition(c.Body(), bodyFormat(c.Get(fiber.HeaderContentType)))
	if err != nil {
		l.Warn("Rejected comparison definition", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error(), Kind: engine.ErrConfiguration.Error()})
	}

	l.Info("Running comparison", zap.Int("steps", len(def.Steps)))
	result, err := h.service.Run(c.UserContext(), def)
	if err != nil {
		l.Error("Comparison failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(errorResponse(err, result))
	}

	resp := RunResponse{Steps: result.Steps, Count: result.Output.Len()}
	if c.Query("include") == "output" {
		resp.Assets = assetlist.ToJSONAssets(result.Output)
	}
	return c.JSON(resp)
}

// HandleLists returns one list, or the stored locators when no locator is given.
// @Summary Get Lists
// @Description Returns the list stored under locator as JSON. Without a locator, returns the locators of every stored list.
// @Tags comparison
// @Produce json
// @Param locator query string false "List locator, e.g. s3://builds/1042.assetlist"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse "Locator outside the list root"
// @Failure 404 {object} ErrorResponse "List not found"
// @Failure 501 {object} ErrorResponse "Store cannot enumerate lists"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /comparison/lists [get]
func (h *Handler) HandleLists(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	locator := c.Query("locator")

	if locator == "" {
		locators, err := h.service.Locators(c.UserContext())
		if errors.Is(err, ErrListingUnsupported) {
			return c.Status(fiber.StatusNotImplemented).JSON(ErrorResponse{Error: err.Error()})
		}
		if err != nil {
			l.Error("Listing lists failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
		}
		return c.JSON(fiber.Map{"lists": locators})
	}

	list, err := h.service.GetList(c.UserContext(), locator)
	if err != nil {
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, assetlist.ErrInvalidLocator):
			status = fiber.StatusBadRequest
		case errors.Is(err, assetlist.ErrListNotFound):
			status = fiber.StatusNotFound
		default:
			l.Error("Loading list failed", zap.String("locator", locator), zap.Error(err))
		}
		return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(fiber.Map{
		"locator": locator,
		"count":   list.Len(),
		"assets":  assetlist.ToJSONAssets(list),
	})
}

func bodyFormat(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "yaml"):
		return "yaml"
	case strings.Contains(ct, "toml"):
		return "toml"
	default:
		return "json"
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrConfiguration),
		errors.Is(err, engine.ErrTokenResolution),
		errors.Is(err, engine.ErrPattern),
		errors.Is(err, assetlist.ErrInvalidLocator):
		return fiber.StatusBadRequest
	case errors.Is(err, assetlist.ErrListNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func errorResponse(err error, result *engine.Result) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}
	if result != nil {
		resp.Completed = result.Steps
	}

	var stepErr *engine.StepError
	if errors.As(err, &stepErr) {
		resp.Kind = stepErr.Kind.Error()
		resp.Phase = string(stepErr.Phase)
		if stepErr.Index >= 0 {
			resp.Step = stepErr.Index + 1
			resp.Output = stepErr.Output
		}
	} else if errors.Is(err, engine.ErrConfiguration) {
		resp.Kind = engine.ErrConfiguration.Error()
	}
	return resp
}
