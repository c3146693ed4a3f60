package advisor

import (
	"context"
	"strings"

	"github.com/spec-kit/triage-service/internal/domain"
)

// KeywordAdvisor is a deterministic last-resort classifier used when no
// model-backed advisor is configured or when one fails.
type KeywordAdvisor struct{}

// NewKeywordAdvisor constructs the keyword classifier.
func NewKeywordAdvisor() *KeywordAdvisor {
	return &KeywordAdvisor{}
}

// Suggest classifies by keyword scan. It never fails.
func (a *KeywordAdvisor) Suggest(_ context.Context, description string) (domain.ClassificationSuggestion, error) {
	desc := strings.ToLower(description)
	suggestion := domain.ClassificationSuggestion{
		SuggestedCategory: domain.CategoryGeneral,
		SuggestedPriority: domain.TicketPriorityLow,
	}

	switch {
	case containsAny(desc, "bill", "payment", "refund"):
		suggestion.SuggestedCategory = domain.CategoryBilling
	case containsAny(desc, "password", "login", "access"):
		suggestion.SuggestedCategory = domain.CategoryAccount
	case containsAny(desc, "crash", "error", "bug", "not working"):
		suggestion.SuggestedCategory = domain.CategoryTechnical
		suggestion.SuggestedPriority = domain.TicketPriorityMedium
	}

	switch {
	case containsAny(desc, "urgent", "critical", "blocking"):
		suggestion.SuggestedPriority = domain.TicketPriorityCritical
	case strings.Contains(desc, "important"):
		suggestion.SuggestedPriority = domain.TicketPriorityHigh
	}

	return suggestion, nil
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// FallbackAdvisor tries a primary advisor and silently degrades to a
// secondary one on any error. Used to back a model advisor with the
// keyword classifier so classification never hard-fails.
type FallbackAdvisor struct {
	primary   Advisor
	secondary Advisor
}

// NewFallbackAdvisor chains two advisors.
func NewFallbackAdvisor(primary, secondary Advisor) *FallbackAdvisor {
	return &FallbackAdvisor{primary: primary, secondary: secondary}
}

// Suggest returns the primary result when available.
func (a *FallbackAdvisor) Suggest(ctx context.Context, description string) (domain.ClassificationSuggestion, error) {
	suggestion, err := a.primary.Suggest(ctx, description)
	if err == nil {
		return suggestion, nil
	}
	return a.secondary.Suggest(ctx, description)
}
