package domain

import (
	"math"
	"time"
)

// StatsSummary is derived from the full ticket collection on demand.
// Both breakdowns carry every enumeration member, zero-valued when no
// ticket has that value.
type StatsSummary struct {
	TotalTickets      int
	OpenTickets       int
	AvgTicketsPerDay  float64
	PriorityBreakdown map[TicketPriority]int
	CategoryBreakdown map[TicketCategory]int
}

// ComputeStats aggregates the current collection. It is a pure
// function: no caching, no incremental state.
func ComputeStats(tickets []Ticket) StatsSummary {
	summary := StatsSummary{
		TotalTickets:      len(tickets),
		PriorityBreakdown: make(map[TicketPriority]int, len(AllPriorities)),
		CategoryBreakdown: make(map[TicketCategory]int, len(AllCategories)),
	}
	for _, p := range AllPriorities {
		summary.PriorityBreakdown[p] = 0
	}
	for _, c := range AllCategories {
		summary.CategoryBreakdown[c] = 0
	}

	days := make(map[string]struct{})
	for _, t := range tickets {
		if t.Status == TicketStatusOpen || t.Status == TicketStatusInProgress {
			summary.OpenTickets++
		}
		summary.PriorityBreakdown[t.Priority]++
		summary.CategoryBreakdown[t.Category]++
		days[t.CreatedAt.UTC().Format(time.DateOnly)] = struct{}{}
	}

	if len(days) > 0 {
		avg := float64(summary.TotalTickets) / float64(len(days))
		summary.AvgTicketsPerDay = math.Round(avg*10) / 10
	}
	return summary
}
