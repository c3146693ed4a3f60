// Package advisor implements the classification assist workflow: given
// free-text issue descriptions it produces advisory category/priority
// suggestions. Suggestions are hints only; callers may accept, override
// or ignore them, and a failing advisor never blocks ticket creation.
package advisor

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/spec-kit/triage-service/internal/domain"
)

// MinDescriptionLength is the trigger threshold: shorter text never
// results in a suggestion request, avoiding noise on partial input.
const MinDescriptionLength = 10

// ErrDescriptionTooShort is returned when the caller asks for a
// suggestion below the trigger threshold.
var ErrDescriptionTooShort = errors.New("description below classification threshold")

// Advisor maps description text to a category/priority suggestion. The
// call is treated as potentially slow and potentially failing;
// implementations must honor context cancellation. Determinism is not
// required: each response stands on its own.
type Advisor interface {
	Suggest(ctx context.Context, description string) (domain.ClassificationSuggestion, error)
}

// Eligible reports whether description text meets the trigger policy.
// Length is measured in characters, not bytes, so multibyte text is
// not over-eager to trigger.
func Eligible(description string) bool {
	return utf8.RuneCountInString(description) >= MinDescriptionLength
}
