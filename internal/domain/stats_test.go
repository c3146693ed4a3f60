package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsTicket(priority TicketPriority, category TicketCategory, status TicketStatus, createdAt time.Time) Ticket {
	return Ticket{
		ID:          "id-" + string(priority) + "-" + createdAt.Format(time.RFC3339Nano),
		Title:       "title",
		Description: "description",
		Category:    category,
		Priority:    priority,
		Status:      status,
		CreatedAt:   createdAt,
	}
}

func TestComputeStatsEmptyCollection(t *testing.T) {
	summary := ComputeStats(nil)

	assert.Equal(t, 0, summary.TotalTickets)
	assert.Equal(t, 0, summary.OpenTickets)
	assert.Equal(t, 0.0, summary.AvgTicketsPerDay)
	require.Len(t, summary.PriorityBreakdown, len(AllPriorities))
	require.Len(t, summary.CategoryBreakdown, len(AllCategories))
	for _, p := range AllPriorities {
		assert.Equal(t, 0, summary.PriorityBreakdown[p])
	}
	for _, c := range AllCategories {
		assert.Equal(t, 0, summary.CategoryBreakdown[c])
	}
}

func TestComputeStatsPriorityBreakdown(t *testing.T) {
	day := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	priorities := []TicketPriority{TicketPriorityHigh, TicketPriorityHigh, TicketPriorityLow, TicketPriorityCritical, TicketPriorityMedium}
	tickets := make([]Ticket, 0, len(priorities))
	for _, p := range priorities {
		tickets = append(tickets, statsTicket(p, CategoryGeneral, TicketStatusOpen, day))
	}

	summary := ComputeStats(tickets)

	assert.Equal(t, map[TicketPriority]int{
		TicketPriorityLow:      1,
		TicketPriorityMedium:   1,
		TicketPriorityHigh:     2,
		TicketPriorityCritical: 1,
	}, summary.PriorityBreakdown)
}

func TestComputeStatsUnusedKeysPresent(t *testing.T) {
	day := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	tickets := []Ticket{statsTicket(TicketPriorityLow, CategoryBilling, TicketStatusOpen, day)}

	summary := ComputeStats(tickets)

	// a consumer must not need to guess that missing keys are zero
	count, ok := summary.PriorityBreakdown[TicketPriorityCritical]
	require.True(t, ok)
	assert.Equal(t, 0, count)
	count, ok = summary.CategoryBreakdown[CategoryTechnical]
	require.True(t, ok)
	assert.Equal(t, 0, count)
}

func TestComputeStatsTotalsMatchBreakdownSums(t *testing.T) {
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	tickets := []Ticket{
		statsTicket(TicketPriorityHigh, CategoryBilling, TicketStatusOpen, day),
		statsTicket(TicketPriorityLow, CategoryTechnical, TicketStatusResolved, day.Add(26*time.Hour)),
		statsTicket(TicketPriorityLow, CategoryTechnical, TicketStatusClosed, day.Add(50*time.Hour)),
		statsTicket(TicketPriorityCritical, CategoryAccount, TicketStatusInProgress, day.Add(51*time.Hour)),
	}

	summary := ComputeStats(tickets)

	var prioritySum, categorySum int
	for _, count := range summary.PriorityBreakdown {
		prioritySum += count
	}
	for _, count := range summary.CategoryBreakdown {
		categorySum += count
	}
	assert.Equal(t, summary.TotalTickets, prioritySum)
	assert.Equal(t, summary.TotalTickets, categorySum)
}

func TestComputeStatsOpenTickets(t *testing.T) {
	day := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	tickets := []Ticket{
		statsTicket(TicketPriorityLow, CategoryGeneral, TicketStatusOpen, day),
		statsTicket(TicketPriorityLow, CategoryGeneral, TicketStatusInProgress, day),
		statsTicket(TicketPriorityLow, CategoryGeneral, TicketStatusResolved, day),
		statsTicket(TicketPriorityLow, CategoryGeneral, TicketStatusClosed, day),
	}

	summary := ComputeStats(tickets)
	assert.Equal(t, 2, summary.OpenTickets, "open includes open and in_progress only")
}

func TestComputeStatsAvgPerDay(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		tickets := make([]Ticket, 0, 10)
		for i := 0; i < 10; i++ {
			tickets = append(tickets, statsTicket(TicketPriorityLow, CategoryGeneral, TicketStatusOpen, day.Add(time.Duration(i)*time.Hour)))
		}
		assert.Equal(t, 10.0, ComputeStats(tickets).AvgTicketsPerDay)
	})

	t.Run("five distinct days", func(t *testing.T) {
		start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
		tickets := make([]Ticket, 0, 10)
		for i := 0; i < 10; i++ {
			tickets = append(tickets, statsTicket(TicketPriorityLow, CategoryGeneral, TicketStatusOpen, start.AddDate(0, 0, i%5)))
		}
		assert.Equal(t, 2.0, ComputeStats(tickets).AvgTicketsPerDay)
	})

	t.Run("rounded to one decimal", func(t *testing.T) {
		start := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
		tickets := []Ticket{
			statsTicket(TicketPriorityLow, CategoryGeneral, TicketStatusOpen, start),
			statsTicket(TicketPriorityLow, CategoryGeneral, TicketStatusOpen, start.AddDate(0, 0, 1)),
			statsTicket(TicketPriorityLow, CategoryGeneral, TicketStatusOpen, start.AddDate(0, 0, 2)),
			statsTicket(TicketPriorityLow, CategoryGeneral, TicketStatusOpen, start),
		}
		// 4 tickets over 3 days
		assert.Equal(t, 1.3, ComputeStats(tickets).AvgTicketsPerDay)
	})
}
