package domain

// ClassificationSuggestion is the transient advisor response for a
// given description. It is a hint, not binding: the submitting user may
// override either field before creation.
type ClassificationSuggestion struct {
	SuggestedCategory TicketCategory
	SuggestedPriority TicketPriority
}
