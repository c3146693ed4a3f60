package domain

import "strings"

// FilterAll is the wildcard value accepted for any criterion.
const FilterAll = "all"

// FilterCriteria captures the read-side search parameters. Zero values
// (or "all") leave the corresponding dimension unconstrained.
type FilterCriteria struct {
	Search   string
	Category TicketCategory
	Priority TicketPriority
	Status   TicketStatus
}

// HasCategory reports whether the category criterion is active.
func (f FilterCriteria) HasCategory() bool {
	return f.Category != "" && string(f.Category) != FilterAll
}

// HasPriority reports whether the priority criterion is active.
func (f FilterCriteria) HasPriority() bool {
	return f.Priority != "" && string(f.Priority) != FilterAll
}

// HasStatus reports whether the status criterion is active.
func (f FilterCriteria) HasStatus() bool {
	return f.Status != "" && string(f.Status) != FilterAll
}

// HasSearch reports whether the free-text criterion is active.
func (f FilterCriteria) HasSearch() bool {
	return strings.TrimSpace(f.Search) != ""
}

// Matches evaluates all active criteria AND-combined against a ticket.
// Search matches case-insensitively as a substring of title or
// description; a hit on either field is sufficient.
func (f FilterCriteria) Matches(t Ticket) bool {
	if f.HasCategory() && t.Category != f.Category {
		return false
	}
	if f.HasPriority() && t.Priority != f.Priority {
		return false
	}
	if f.HasStatus() && t.Status != f.Status {
		return false
	}
	if f.HasSearch() {
		needle := strings.ToLower(strings.TrimSpace(f.Search))
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	return true
}

// ApplyFilter returns the matching subset, preserving the input's
// relative order. An empty result is a valid outcome, not an error.
func ApplyFilter(tickets []Ticket, criteria FilterCriteria) []Ticket {
	result := make([]Ticket, 0, len(tickets))
	for _, t := range tickets {
		if criteria.Matches(t) {
			result = append(result, t)
		}
	}
	return result
}
