package quote

import (
	"context"

	"carecalendar-api/internal/config"

	"go.uber.org/zap"
)

// QuoteService provides self-care quotes for the API and the chatbot.
type QuoteService interface {
	// GetSelfCareQuote returns a quote matching the request. When a remote
	// provider is configured and fails, the built-in catalog answers instead.
	GetSelfCareQuote(ctx context.Context, req QuoteRequest) (Quote, error)
}

type quoteService struct {
	primary  QuoteProvider
	fallback QuoteProvider
	logger   *zap.Logger
}

// NewQuoteService creates a quote service. The remote provider is used only
// when an API endpoint is configured.
func NewQuoteService(cfg config.QuoteConfig, logger *zap.Logger) QuoteService {
	catalog := NewCatalogProvider()

	var primary QuoteProvider = catalog
	var fallback QuoteProvider
	if cfg.APIEndpoint != "" {
		primary = NewRemoteProvider(cfg, logger)
		fallback = catalog
	}

	return &quoteService{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// NewQuoteServiceWithProviders creates a quote service with explicit
// providers, used by tests.
func NewQuoteServiceWithProviders(primary, fallback QuoteProvider, logger *zap.Logger) QuoteService {
	return &quoteService{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (s *quoteService) GetSelfCareQuote(ctx context.Context, req QuoteRequest) (Quote, error) {
	if err := req.Validate(); err != nil {
		return Quote{}, err
	}

	quote, err := s.primary.GetQuote(ctx, req)
	if err == nil {
		return quote, nil
	}

	if s.fallback == nil {
		return Quote{}, err
	}

	s.logger.Warn("Primary quote provider failed, falling back to catalog",
		zap.Error(err),
		zap.String("category", req.Category))
	return s.fallback.GetQuote(ctx, req)
}
