package advisor

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
)

// DraftRequester coordinates suggestion requests for a single ticket
// draft. Each description edit supersedes any in-flight request rather
// than queueing behind it: responses are tagged with a generation
// counter and only the latest generation is delivered. After Close,
// pending responses are discarded silently, since the draft no longer
// accepts them. Advisor failures are logged, never surfaced.
type DraftRequester struct {
	advisor Advisor
	logger  *zap.Logger
	deliver func(domain.ClassificationSuggestion)

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	closed     bool
}

// NewDraftRequester constructs a requester delivering accepted
// suggestions through the given callback. The callback is invoked from
// a request goroutine, at most once per generation, and must not call
// back into the requester.
func NewDraftRequester(adv Advisor, logger *zap.Logger, deliver func(domain.ClassificationSuggestion)) *DraftRequester {
	return &DraftRequester{advisor: adv, logger: logger, deliver: deliver}
}

// Request starts a suggestion request for the current description text.
// It returns false without side effects when the text is below the
// trigger threshold or the requester is closed. It never blocks on the
// advisor.
func (r *DraftRequester) Request(ctx context.Context, description string) bool {
	if !Eligible(description) {
		return false
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return false
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.generation++
	generation := r.generation
	reqCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	go r.run(reqCtx, generation, description)
	return true
}

func (r *DraftRequester) run(ctx context.Context, generation uint64, description string) {
	suggestion, err := r.advisor.Suggest(ctx, description)

	// The staleness check and the callback share the lock: a Request
	// issued after the check cannot interleave a fresher delivery
	// before this one reaches the sink.
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || generation != r.generation {
		r.logger.Debug("discarding stale suggestion response", zap.Uint64("generation", generation))
		return
	}
	if err != nil {
		r.logger.Warn("classification request failed", zap.Error(err))
		return
	}
	r.deliver(suggestion)
}

// Close abandons any in-flight request. Subsequent Request calls are
// no-ops; a response already in flight is dropped without error.
func (r *DraftRequester) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	if r.cancel != nil {
		r.cancel()
	}
}
