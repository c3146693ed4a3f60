package advisor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/triage-service/internal/domain"
)

// gateAdvisor blocks each Suggest call until the matching gate channel
// is closed, so tests control response ordering deterministically.
type gateAdvisor struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	out   map[string]domain.ClassificationSuggestion
}

func newGateAdvisor() *gateAdvisor {
	return &gateAdvisor{gates: make(map[string]chan struct{}), out: make(map[string]domain.ClassificationSuggestion)}
}

func (g *gateAdvisor) expect(description string, suggestion domain.ClassificationSuggestion) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	gate := make(chan struct{})
	g.gates[description] = gate
	g.out[description] = suggestion
	return gate
}

func (g *gateAdvisor) Suggest(ctx context.Context, description string) (domain.ClassificationSuggestion, error) {
	g.mu.Lock()
	gate := g.gates[description]
	suggestion := g.out[description]
	g.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return domain.ClassificationSuggestion{}, ctx.Err()
		}
	}
	return suggestion, nil
}

type capture struct {
	mu       sync.Mutex
	received []domain.ClassificationSuggestion
}

func (c *capture) deliver(s domain.ClassificationSuggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.received = append(c.received, s)
}

func (c *capture) snapshot() []domain.ClassificationSuggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.ClassificationSuggestion{}, c.received...)
}

func TestDraftRequesterThreshold(t *testing.T) {
	adv := newGateAdvisor()
	sink := &capture{}
	r := NewDraftRequester(adv, zap.NewNop(), sink.deliver)

	assert.False(t, r.Request(context.Background(), "bug"), "below-threshold text must never consult the advisor")
	assert.False(t, r.Request(context.Background(), "123456789"))
	assert.True(t, r.Request(context.Background(), "The app crashes every time I click save"))
}

func TestDraftRequesterDeliversLatest(t *testing.T) {
	adv := newGateAdvisor()
	sink := &capture{}
	r := NewDraftRequester(adv, zap.NewNop(), sink.deliver)
	defer r.Close()

	staleDesc := "printer is not working"
	freshDesc := "printer is not working since the v2 update"
	staleGate := adv.expect(staleDesc, domain.ClassificationSuggestion{SuggestedCategory: domain.CategoryGeneral, SuggestedPriority: domain.TicketPriorityLow})
	freshGate := adv.expect(freshDesc, domain.ClassificationSuggestion{SuggestedCategory: domain.CategoryTechnical, SuggestedPriority: domain.TicketPriorityMedium})

	require.True(t, r.Request(context.Background(), staleDesc))
	require.True(t, r.Request(context.Background(), freshDesc))

	// let the superseding request finish first, then release the stale one
	close(freshGate)
	require.Eventually(t, func() bool {
		return len(sink.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	close(staleGate)
	time.Sleep(50 * time.Millisecond)

	received := sink.snapshot()
	require.Len(t, received, 1, "stale response must be discarded silently")
	assert.Equal(t, domain.CategoryTechnical, received[0].SuggestedCategory)
}

// A response that went stale between the advisor returning and the
// callback firing must not land after the superseding delivery. The
// loop shakes out interleavings where the two request goroutines race
// to the sink.
func TestDraftRequesterDeliveryIsMonotonic(t *testing.T) {
	staleDesc := "printer is not working"
	freshDesc := "printer is not working since the v2 update"
	adv := advisorFunc(func(_ context.Context, d string) (domain.ClassificationSuggestion, error) {
		if d == freshDesc {
			return domain.ClassificationSuggestion{SuggestedCategory: domain.CategoryTechnical, SuggestedPriority: domain.TicketPriorityMedium}, nil
		}
		return domain.ClassificationSuggestion{SuggestedCategory: domain.CategoryGeneral, SuggestedPriority: domain.TicketPriorityLow}, nil
	})

	for i := 0; i < 20; i++ {
		sink := &capture{}
		r := NewDraftRequester(adv, zap.NewNop(), sink.deliver)

		require.True(t, r.Request(context.Background(), staleDesc))
		require.True(t, r.Request(context.Background(), freshDesc))

		require.Eventually(t, func() bool {
			received := sink.snapshot()
			return len(received) > 0 && received[len(received)-1].SuggestedCategory == domain.CategoryTechnical
		}, time.Second, time.Millisecond)

		time.Sleep(10 * time.Millisecond)
		received := sink.snapshot()
		assert.Equal(t, domain.CategoryTechnical, received[len(received)-1].SuggestedCategory,
			"a superseded suggestion must never follow the superseding one")
		r.Close()
	}
}

func TestDraftRequesterCloseDiscardsPending(t *testing.T) {
	adv := newGateAdvisor()
	sink := &capture{}
	r := NewDraftRequester(adv, zap.NewNop(), sink.deliver)

	desc := "sync keeps failing with a timeout"
	gate := adv.expect(desc, domain.ClassificationSuggestion{SuggestedCategory: domain.CategoryTechnical, SuggestedPriority: domain.TicketPriorityHigh})

	require.True(t, r.Request(context.Background(), desc))
	r.Close()
	close(gate)
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, sink.snapshot(), "responses arriving after close must be dropped without error")
	assert.False(t, r.Request(context.Background(), "another long description here"), "closed requester accepts no new work")
}

func TestDraftRequesterAdvisorFailureIsSilent(t *testing.T) {
	adv := advisorFunc(func(context.Context, string) (domain.ClassificationSuggestion, error) {
		return domain.ClassificationSuggestion{}, context.DeadlineExceeded
	})
	sink := &capture{}
	r := NewDraftRequester(adv, zap.NewNop(), sink.deliver)
	defer r.Close()

	require.True(t, r.Request(context.Background(), "a perfectly long description"))
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, sink.snapshot(), "failures never surface to the draft workflow")
}

func TestEligible(t *testing.T) {
	assert.False(t, Eligible(""))
	assert.False(t, Eligible("bug"))
	assert.False(t, Eligible("123456789"))
	assert.True(t, Eligible("1234567890"))
	assert.True(t, Eligible("The app crashes every time I click save"))
}

// The threshold counts characters, not bytes: five Cyrillic letters
// are ten bytes but stay below the trigger.
func TestEligibleCountsCharacters(t *testing.T) {
	assert.False(t, Eligible("ппппп"))
	assert.False(t, Eligible("ппппппппп"))
	assert.True(t, Eligible("пппппппппп"))
}
