package domain

// TransitionPolicy decides whether a status transition is allowed.
// Kept as a policy object so the rule can be tightened to a directed
// adjacency graph later without touching call sites.
type TransitionPolicy interface {
	CanTransition(from, to TicketStatus) bool
}

// OpenTransitionPolicy permits any member of the status enumeration to
// move to any other member: staff may reopen a closed ticket or jump
// straight from open to resolved.
type OpenTransitionPolicy struct{}

// NewOpenTransitionPolicy returns the production policy.
func NewOpenTransitionPolicy() TransitionPolicy {
	return OpenTransitionPolicy{}
}

// CanTransition only requires the target to be a valid status.
func (OpenTransitionPolicy) CanTransition(_, to TicketStatus) bool {
	return to.Valid()
}
