package dto

import (
	"time"

	"github.com/spec-kit/triage-service/internal/domain"
)

// CreateTicketRequest payload. Category and priority may carry values
// pre-filled from a classification suggestion; they are validated
// against the closed enumerations either way.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// UpdateTicketStatusRequest payload.
type UpdateTicketStatusRequest struct {
	Status string `json:"status"`
}

// TicketResponse is the wire representation of a ticket.
type TicketResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    domain.TicketCategory `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	Status      domain.TicketStatus   `json:"status"`
	CreatedAt   time.Time             `json:"created_at"`
}

// ClassifyRequest payload.
type ClassifyRequest struct {
	Description string `json:"description"`
}

// ClassifyResponse mirrors the advisor's suggestion pair.
type ClassifyResponse struct {
	SuggestedCategory domain.TicketCategory `json:"suggested_category"`
	SuggestedPriority domain.TicketPriority `json:"suggested_priority"`
}

// StatsResponse is the wire representation of a stats summary. Both
// breakdowns always carry every enumeration member.
type StatsResponse struct {
	TotalTickets      int            `json:"total_tickets"`
	OpenTickets       int            `json:"open_tickets"`
	AvgTicketsPerDay  float64        `json:"avg_tickets_per_day"`
	PriorityBreakdown map[string]int `json:"priority_breakdown"`
	CategoryBreakdown map[string]int `json:"category_breakdown"`
}
