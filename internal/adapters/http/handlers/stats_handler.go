package handlers

import (
	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StatsHandler handles statistics and report endpoints
type StatsHandler struct {
	statsService *services.StatsService
	queryService *services.QueryService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService, queryService *services.QueryService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		queryService: queryService,
	}
}

// GetStats computes library statistics
// @Summary Library statistics
// @Description Compute live counts for books, copies, members and open borrowings
// @Tags Stats
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.statsService.ComputeStats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute statistics")
	}

	return response.Success(c, "Statistics computed successfully", fiber.Map{
		"stats": stats,
	})
}

// OverdueReport lists overdue borrowings
// @Summary Overdue report
// @Description List open borrowings past their due date, most overdue first
// @Tags Stats
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /reports/overdue [get]
func (h *StatsHandler) OverdueReport(c *fiber.Ctx) error {
	overdue, err := h.queryService.OverdueReport(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build overdue report")
	}

	// Return empty array if nothing is overdue
	if overdue == nil {
		overdue = []*models.OverdueView{}
	}

	return response.Success(c, "Overdue report retrieved successfully", fiber.Map{
		"overdue": overdue,
		"count":   len(overdue),
	})
}
