package quote

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"carecalendar-api/internal/common"
)

// catalogProvider serves quotes from a built-in curated list. It is the
// fallback when no remote endpoint is configured or the remote one fails.
type catalogProvider struct {
	quotes []Quote
	rng    *rand.Rand
	mu     sync.Mutex
}

// NewCatalogProvider creates a provider backed by the curated quote list.
func NewCatalogProvider() QuoteProvider {
	return &catalogProvider{
		quotes: catalogQuotes,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (p *catalogProvider) GetQuote(ctx context.Context, req QuoteRequest) (Quote, error) {
	if err := req.Validate(); err != nil {
		return Quote{}, err
	}

	candidates := p.quotes
	if req.Category != "" {
		candidates = nil
		for _, q := range p.quotes {
			if q.Category == req.Category {
				candidates = append(candidates, q)
			}
		}
	}
	if len(candidates) == 0 {
		return Quote{}, common.NotFoundError{Resource: "quote", ID: req.Category}
	}

	p.mu.Lock()
	idx := p.rng.Intn(len(candidates))
	p.mu.Unlock()

	return candidates[idx], nil
}

func (p *catalogProvider) IsAvailable(ctx context.Context) bool {
	return true
}

var catalogQuotes = []Quote{
	{Text: "Rest is not a reward for finishing, it is part of the work.", Category: CategorySelfCare},
	{Text: "You cannot pour from an empty cup. Take care of yourself first.", Category: CategorySelfCare},
	{Text: "Small steps every day add up to big changes.", Category: CategorySelfCare},
	{Text: "It is okay to do less today than you did yesterday.", Category: CategorySelfCare},
	{Text: "Progress, not perfection.", Category: CategoryMotivation},
	{Text: "The best time to start was yesterday. The next best time is now.", Category: CategoryMotivation},
	{Text: "You have survived every hard day so far.", Category: CategoryMotivation},
	{Text: "Done is better than perfect.", Category: CategoryMotivation},
	{Text: "Breathe in calm, breathe out tension.", Category: CategoryMindfulness},
	{Text: "Wherever you are, be there fully.", Category: CategoryMindfulness},
	{Text: "One moment at a time is enough.", Category: CategoryMindfulness},
	{Text: "Notice three things around you right now. You are here.", Category: CategoryMindfulness},
	{Text: "Gratitude turns what we have into enough.", Category: CategoryGratitude},
	{Text: "Start each day by naming one thing you are thankful for.", Category: CategoryGratitude},
	{Text: "Someone is glad you exist today.", Category: CategoryGratitude},
}
