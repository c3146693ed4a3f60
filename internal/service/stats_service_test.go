package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/repository"
)

func TestGetStatsRecomputesFromCollection(t *testing.T) {
	repo := repository.NewMemoryTicketRepository()
	stats := NewStatsService(repo, nil, time.Minute, zap.NewNop())
	ctx := context.Background()

	summary, err := stats.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalTickets)

	day := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	seed := []domain.Ticket{
		{ID: "a", Title: "t", Description: "d", Category: domain.CategoryBilling, Priority: domain.TicketPriorityHigh, Status: domain.TicketStatusOpen, CreatedAt: day},
		{ID: "b", Title: "t", Description: "d", Category: domain.CategoryTechnical, Priority: domain.TicketPriorityLow, Status: domain.TicketStatusInProgress, CreatedAt: day},
		{ID: "c", Title: "t", Description: "d", Category: domain.CategoryTechnical, Priority: domain.TicketPriorityLow, Status: domain.TicketStatusClosed, CreatedAt: day.AddDate(0, 0, 1)},
	}
	for _, ticket := range seed {
		require.NoError(t, repo.Create(ctx, ticket))
	}

	summary, err = stats.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalTickets)
	assert.Equal(t, 2, summary.OpenTickets)
	assert.Equal(t, 1.5, summary.AvgTicketsPerDay)
	assert.Equal(t, 2, summary.PriorityBreakdown[domain.TicketPriorityLow])
	assert.Equal(t, 0, summary.PriorityBreakdown[domain.TicketPriorityCritical])
	assert.Equal(t, 2, summary.CategoryBreakdown[domain.CategoryTechnical])
}

func TestGetStatsReflectsStatusTransitions(t *testing.T) {
	repo := repository.NewMemoryTicketRepository()
	stats := NewStatsService(repo, nil, time.Minute, zap.NewNop())
	ctx := context.Background()

	ticket := domain.Ticket{
		ID: "a", Title: "t", Description: "d",
		Category: domain.CategoryGeneral, Priority: domain.TicketPriorityLow,
		Status: domain.TicketStatusOpen, CreatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, ticket))

	summary, err := stats.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.OpenTickets)

	_, err = repo.UpdateStatus(ctx, "a", domain.TicketStatusResolved)
	require.NoError(t, err)

	// no cache configured: every request recomputes from the collection
	summary, err = stats.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.OpenTickets)
	assert.Equal(t, 1, summary.TotalTickets)
}
