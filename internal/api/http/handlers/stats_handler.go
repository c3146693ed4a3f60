package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/service"
)

// StatsHandler exposes the dashboard statistics endpoint.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{service: statsService}
}

// GetStats GET /tickets/stats.
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	summary, err := h.service.GetStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(statsResponse(summary))
}

func statsResponse(summary domain.StatsSummary) dto.StatsResponse {
	priorities := make(map[string]int, len(summary.PriorityBreakdown))
	for priority, count := range summary.PriorityBreakdown {
		priorities[string(priority)] = count
	}
	categories := make(map[string]int, len(summary.CategoryBreakdown))
	for category, count := range summary.CategoryBreakdown {
		categories[string(category)] = count
	}
	return dto.StatsResponse{
		TotalTickets:      summary.TotalTickets,
		OpenTickets:       summary.OpenTickets,
		AvgTicketsPerDay:  summary.AvgTicketsPerDay,
		PriorityBreakdown: priorities,
		CategoryBreakdown: categories,
	}
}
