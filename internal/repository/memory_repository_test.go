package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/pkg/util"
)

func seedTicket(id string, createdAt time.Time) domain.Ticket {
	return domain.Ticket{
		ID:          id,
		Title:       "Title " + id,
		Description: "Description " + id,
		Category:    domain.CategoryGeneral,
		Priority:    domain.TicketPriorityLow,
		Status:      domain.TicketStatusOpen,
		CreatedAt:   createdAt,
	}
}

func TestMemoryRepositoryCreateAndGet(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	ticket := seedTicket("t1", time.Now())
	require.NoError(t, repo.Create(ctx, ticket))

	got, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, ticket, got)
}

func TestMemoryRepositoryGetUnknownID(t *testing.T) {
	repo := NewMemoryTicketRepository()

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "NOT_FOUND"))
}

func TestMemoryRepositoryListNewestFirst(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, seedTicket("old", base)))
	require.NoError(t, repo.Create(ctx, seedTicket("new", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, seedTicket("mid", base.Add(30*time.Minute))))

	tickets, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	assert.Equal(t, "new", tickets[0].ID)
	assert.Equal(t, "mid", tickets[1].ID)
	assert.Equal(t, "old", tickets[2].ID)
}

func TestMemoryRepositoryListAppliesFilter(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	billing := seedTicket("b1", base)
	billing.Category = domain.CategoryBilling
	require.NoError(t, repo.Create(ctx, billing))
	require.NoError(t, repo.Create(ctx, seedTicket("g1", base.Add(time.Minute))))

	tickets, err := repo.List(ctx, domain.FilterCriteria{Category: domain.CategoryBilling}, Page{})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, "b1", tickets[0].ID)

	empty, err := repo.List(ctx, domain.FilterCriteria{Category: domain.CategoryBilling, Status: domain.TicketStatusClosed}, Page{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryRepositoryListPaginates(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()
	base := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	ids := []string{"t1", "t2", "t3", "t4", "t5"}
	for i, id := range ids {
		require.NoError(t, repo.Create(ctx, seedTicket(id, base.Add(time.Duration(i)*time.Minute))))
	}

	window, err := repo.List(ctx, domain.FilterCriteria{}, Page{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, "t3", window[0].ID)
	assert.Equal(t, "t2", window[1].ID)

	tail, err := repo.List(ctx, domain.FilterCriteria{}, Page{Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "t1", tail[0].ID)

	past, err := repo.List(ctx, domain.FilterCriteria{}, Page{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestPageNormalize(t *testing.T) {
	limit, offset := Page{}.Normalize()
	assert.Equal(t, DefaultPageSize, limit)
	assert.Equal(t, 0, offset)

	limit, offset = Page{Limit: 5, Offset: -3}.Normalize()
	assert.Equal(t, 5, limit)
	assert.Equal(t, 0, offset)
}

func TestMemoryRepositoryUpdateStatus(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	created := seedTicket("t1", time.Now())
	require.NoError(t, repo.Create(ctx, created))

	updated, err := repo.UpdateStatus(ctx, "t1", domain.TicketStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, updated.Status)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = repo.UpdateStatus(ctx, "missing", domain.TicketStatusClosed)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "NOT_FOUND"))
}
