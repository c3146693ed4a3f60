package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/internal/events"
	"github.com/spec-kit/triage-service/internal/repository"
	"github.com/spec-kit/triage-service/pkg/util"
)

// TicketService coordinates ticket intake and lifecycle workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	policy     domain.TransitionPolicy
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Policy     domain.TransitionPolicy
	Dispatcher events.Dispatcher
	Clock      func() time.Time
}

// NewTicketService constructs the service. A nil policy defaults to the
// open transition policy; a nil clock defaults to time.Now.
func NewTicketService(deps TicketDependencies) *TicketService {
	svc := &TicketService{
		tickets:    deps.TicketRepo,
		policy:     deps.Policy,
		dispatcher: deps.Dispatcher,
		now:        deps.Clock,
	}
	if svc.policy == nil {
		svc.policy = domain.NewOpenTransitionPolicy()
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	return svc
}

// CreateTicket validates the draft and persists a new ticket in open
// status. Invalid drafts fail with a validation error naming every
// offending field; nothing is persisted on failure.
func (s *TicketService) CreateTicket(ctx context.Context, draft domain.TicketDraft) (domain.Ticket, error) {
	ticket, fieldErrs := domain.NewTicket(draft, s.now())
	if len(fieldErrs) > 0 {
		details := make(map[string]any, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field] = fe.Message
		}
		return domain.Ticket{}, util.NewValidationError("ticket draft rejected", details)
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return domain.Ticket{}, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// ListTickets returns the matching page of the collection, newest first.
func (s *TicketService) ListTickets(ctx context.Context, criteria domain.FilterCriteria, page repository.Page) ([]domain.Ticket, error) {
	return s.tickets.List(ctx, criteria, page)
}

// GetTicket fetches a single ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id string) (domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

// UpdateStatus moves a ticket to a new lifecycle state. It fails with
// NOT_FOUND for unknown ids and INVALID_STATUS for values outside the
// enumeration; on success only the status field changes.
func (s *TicketService) UpdateStatus(ctx context.Context, id string, newStatus domain.TicketStatus) (domain.Ticket, error) {
	if !newStatus.Valid() {
		return domain.Ticket{}, util.NewInvalidStatus(string(newStatus))
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, err
	}
	if !s.policy.CanTransition(ticket.Status, newStatus) {
		return domain.Ticket{}, util.NewInvalidStatus(string(newStatus))
	}

	oldStatus := ticket.Status
	updated, err := s.tickets.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return domain.Ticket{}, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: updated.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
