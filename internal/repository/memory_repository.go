package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/pkg/util"
)

// memoryTicketRepository keeps tickets in process memory. It backs the
// service when no POSTGRES_DSN is configured and the test suites.
// Listing order matches the postgres repository: created_at descending,
// newest-first ties broken by insertion order.
type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
	byID    map[string]int
}

// NewMemoryTicketRepository constructs an empty in-memory repository.
func NewMemoryTicketRepository() TicketRepository {
	return &memoryTicketRepository{byID: make(map[string]int)}
}

func (r *memoryTicketRepository) Create(_ context.Context, ticket domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[ticket.ID] = len(r.tickets)
	r.tickets = append(r.tickets, ticket)
	return nil
}

func (r *memoryTicketRepository) GetByID(_ context.Context, id string) (domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return domain.Ticket{}, util.NewNotFound("ticket", map[string]any{"id": id})
	}
	return r.tickets[idx], nil
}

func (r *memoryTicketRepository) List(ctx context.Context, criteria domain.FilterCriteria, page Page) ([]domain.Ticket, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered := domain.ApplyFilter(all, criteria)

	limit, offset := page.Normalize()
	if offset >= len(filtered) {
		return []domain.Ticket{}, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (r *memoryTicketRepository) ListAll(_ context.Context) ([]domain.Ticket, error) {
	r.mu.RLock()
	snapshot := make([]domain.Ticket, len(r.tickets))
	copy(snapshot, r.tickets)
	r.mu.RUnlock()

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].CreatedAt.After(snapshot[j].CreatedAt)
	})
	return snapshot, nil
}

func (r *memoryTicketRepository) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) (domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byID[id]
	if !ok {
		return domain.Ticket{}, util.NewNotFound("ticket", map[string]any{"id": id})
	}
	r.tickets[idx].Status = status
	return r.tickets[idx], nil
}
