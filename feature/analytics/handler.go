package analytics

import (
	"fmt"
	"strings"

	"aadhaar-records/core/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const defaultSearchLimit = 50

// SearchParams are the query parameters of GET /records.
type SearchParams struct {
	Pincode string `query:"pincode" validate:"required,min=3"`
	Limit   int    `query:"limit" validate:"gte=1"`
}

// Handler handles HTTP requests for analytics.
type Handler struct {
	service  *Service
	validate *validator.Validate
	maxLimit int
}

// NewHandler creates a new HTTP handler. Search results are capped at maxLimit.
func NewHandler(service *Service, maxLimit int) *Handler {
	if maxLimit <= 0 {
		maxLimit = 1000
	}
	return &Handler{service: service, validate: validator.New(), maxLimit: maxLimit}
}

// RegisterRoutes registers the analytics routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/", h.HandleHealth)
	app.Get("/records", h.HandleSearch)

	group := app.Group("/analytics")
	group.Get("/summary", h.HandleSummary)
	group.Get("/geo", h.HandleGeo)

	app.Post("/admin/reload", h.HandleReload)
}

// HandleHealth reports service liveness and the loaded record count.
// @Summary Health check
// @Description Returns service status and number of loaded records.
// @Tags analytics
// @Produce json
// @Success 200 {object} Health
// @Router / [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(h.service.Health())
}

// HandleSummary returns nationwide age bucket totals.
// @Summary Age summary
// @Description Sums age_0_5, age_5_17 and age_18_greater over all records.
// @Tags analytics
// @Produce json
// @Success 200 {object} Summary
// @Router /analytics/summary [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	summary, ok := h.service.Summary()
	if !ok {
		return c.JSON(fiber.Map{"error": "No data available"})
	}
	return c.JSON(summary)
}

// HandleGeo returns age totals grouped by state and district.
// @Summary Geo breakdown
// @Description Age totals per (state, district), optionally filtered by state.
// @Tags analytics
// @Produce json
// @Param state query string false "Exact state name"
// @Success 200 {array} map[string]interface{}
// @Router /analytics/geo [get]
func (h *Handler) HandleGeo(c *fiber.Ctx) error {
	return c.JSON(h.service.Geo(c.Query("state")))
}

// HandleSearch finds records by pincode substring.
// @Summary Search records
// @Description Records whose pincode contains the given digits.
// @Tags records
// @Produce json
// @Param pincode query string true "Pincode fragment (min 3 chars)"
// @Param limit query int false "Maximum results" default(50)
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Router /records [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	params := SearchParams{Limit: defaultSearchLimit}
	if err := c.QueryParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query parameters"})
	}

	if err := h.validate.Struct(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": describe(err)})
	}

	limit := params.Limit
	if limit > h.maxLimit {
		limit = h.maxLimit
	}
	return c.JSON(h.service.Search(params.Pincode, limit))
}

// HandleReload re-reads the artifact into the store.
// @Summary Reload data
// @Description Reloads the processed records artifact.
// @Tags admin
// @Produce json
// @Success 200 {object} Health
// @Failure 500 {object} map[string]string "Reload failed"
// @Router /admin/reload [post]
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	count, err := h.service.Store().Reload(c.UserContext())
	if err != nil {
		l.Error("Reload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Data reloaded", zap.Int("records", count))
	return c.JSON(Health{Status: "ok", RecordsCount: count})
}

// describe turns validation errors into a single message.
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
