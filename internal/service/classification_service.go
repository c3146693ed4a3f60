package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/advisor"
	"github.com/spec-kit/triage-service/internal/domain"
	"github.com/spec-kit/triage-service/pkg/util"
)

// ClassificationService fronts the advisor for the intake workflow. It
// enforces the trigger threshold and guarantees a usable suggestion or
// a non-fatal error: a failing model advisor degrades to the keyword
// classifier before any error reaches the caller.
type ClassificationService struct {
	advisor advisor.Advisor
	logger  *zap.Logger
}

// NewClassificationService constructs the service around an advisor
// chain.
func NewClassificationService(adv advisor.Advisor, logger *zap.Logger) *ClassificationService {
	return &ClassificationService{advisor: adv, logger: logger}
}

// Suggest returns a suggestion for descriptions meeting the length
// threshold. Shorter text is a validation error; the advisor is never
// consulted for it.
func (s *ClassificationService) Suggest(ctx context.Context, description string) (domain.ClassificationSuggestion, error) {
	if !advisor.Eligible(description) {
		return domain.ClassificationSuggestion{}, util.NewValidationError(
			"description too short for classification",
			map[string]any{"min_length": advisor.MinDescriptionLength},
		)
	}

	suggestion, err := s.advisor.Suggest(ctx, description)
	if err != nil {
		s.logger.Warn("classification advisor failed", zap.Error(err))
		return domain.ClassificationSuggestion{}, util.NewAdvisorUnavailable(err)
	}
	return suggestion, nil
}
