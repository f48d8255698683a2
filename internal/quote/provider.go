package quote

import (
	"context"
)

//go:generate mockgen -source=provider.go -destination=../mocks/quote_mocks.go -package=mocks

// QuoteProvider abstracts the source of self-care quotes so the service
// can swap a remote endpoint for the built-in catalog.
type QuoteProvider interface {
	// GetQuote returns a single quote matching the request. Implementations
	// must honor req.Category when it is set.
	GetQuote(ctx context.Context, req QuoteRequest) (Quote, error)

	// IsAvailable reports whether the provider can currently serve quotes.
	IsAvailable(ctx context.Context) bool
}
