package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority enumerates urgency, ordered from low to critical.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "low"
	TicketPriorityMedium   TicketPriority = "medium"
	TicketPriorityHigh     TicketPriority = "high"
	TicketPriorityCritical TicketPriority = "critical"
)

// TicketCategory enumerates the closed set of issue categories.
type TicketCategory string

const (
	CategoryBilling   TicketCategory = "billing"
	CategoryTechnical TicketCategory = "technical"
	CategoryAccount   TicketCategory = "account"
	CategoryGeneral   TicketCategory = "general"
)

// Ordered enumeration slices; breakdown maps and wire docs iterate these.
var (
	AllStatuses   = []TicketStatus{TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed}
	AllPriorities = []TicketPriority{TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical}
	AllCategories = []TicketCategory{CategoryBilling, CategoryTechnical, CategoryAccount, CategoryGeneral}
)

// Valid reports membership in the status enumeration.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Valid reports membership in the priority enumeration.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh, TicketPriorityCritical:
		return true
	}
	return false
}

// Valid reports membership in the category enumeration.
func (c TicketCategory) Valid() bool {
	switch c {
	case CategoryBilling, CategoryTechnical, CategoryAccount, CategoryGeneral:
		return true
	}
	return false
}

// MaxTitleLength bounds ticket titles.
const MaxTitleLength = 200

// Ticket is the aggregate for support requests. ID and CreatedAt are
// assigned exactly once at creation; Status is the only field that
// changes afterwards.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Category    TicketCategory
	Priority    TicketPriority
	Status      TicketStatus
	CreatedAt   time.Time
}

// TicketDraft carries user input prior to validation. Category and
// Priority may have been pre-filled from a classification suggestion.
type TicketDraft struct {
	Title       string
	Description string
	Category    TicketCategory
	Priority    TicketPriority
}

// FieldError describes a single rejected draft field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateDraft checks entity invariants without creating a ticket.
// It returns one error per offending field.
func ValidateDraft(draft TicketDraft) []FieldError {
	var errs []FieldError
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "must not be empty"})
	} else if utf8.RuneCountInString(title) > MaxTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: fmt.Sprintf("must not exceed %d characters", MaxTitleLength)})
	}
	if strings.TrimSpace(draft.Description) == "" {
		errs = append(errs, FieldError{Field: "description", Message: "must not be empty"})
	}
	if !draft.Category.Valid() {
		errs = append(errs, FieldError{Field: "category", Message: "must be one of billing, technical, account, general"})
	}
	if !draft.Priority.Valid() {
		errs = append(errs, FieldError{Field: "priority", Message: "must be one of low, medium, high, critical"})
	}
	return errs
}

// NewTicket validates a draft and mints the ticket. Partial tickets are
// never produced: any invariant violation fails the whole creation.
func NewTicket(draft TicketDraft, now time.Time) (Ticket, []FieldError) {
	if errs := ValidateDraft(draft); len(errs) > 0 {
		return Ticket{}, errs
	}
	return Ticket{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		Category:    draft.Category,
		Priority:    draft.Priority,
		Status:      TicketStatusOpen,
		CreatedAt:   now,
	}, nil
}
