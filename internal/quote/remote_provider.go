package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"carecalendar-api/internal/common"
	"carecalendar-api/internal/config"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// RemoteProvider fetches quotes from an external HTTP quote API with
// exponential backoff on transient failures.
type RemoteProvider struct {
	config     config.QuoteConfig
	logger     *zap.Logger
	httpClient *http.Client
	backoff    backoff.BackOff
}

type remoteQuoteResponse struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Error    string `json:"error,omitempty"`
}

// NewRemoteProvider creates a provider for the configured quote endpoint.
func NewRemoteProvider(cfg config.QuoteConfig, logger *zap.Logger) *RemoteProvider {
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Timeout) * time.Second,
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.InitialInterval = 500 * time.Millisecond
	backoffStrategy.MaxInterval = 10 * time.Second
	backoffStrategy.MaxElapsedTime = 30 * time.Second
	backoffWithRetry := backoff.WithMaxRetries(backoffStrategy, uint64(cfg.MaxRetries))

	return &RemoteProvider{
		config:     cfg,
		logger:     logger,
		httpClient: httpClient,
		backoff:    backoffWithRetry,
	}
}

// GetQuote implements the QuoteProvider interface
func (p *RemoteProvider) GetQuote(ctx context.Context, req QuoteRequest) (Quote, error) {
	if err := req.Validate(); err != nil {
		return Quote{}, err
	}
	if p.config.APIEndpoint == "" {
		return Quote{}, common.InternalError{Message: "quote API endpoint is not configured"}
	}

	var quote Quote
	operation := func() error {
		var err error
		quote, err = p.callAPI(ctx, req)
		if err != nil {
			if isRetryableStatus(err) {
				p.logger.Warn("Quote API call failed, will retry", zap.Error(err))
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(p.backoff, ctx)); err != nil {
		p.logger.Error("Failed to fetch quote after retries",
			zap.Error(err),
			zap.String("category", req.Category))
		return Quote{}, err
	}

	return quote, nil
}

// IsAvailable implements the QuoteProvider interface
func (p *RemoteProvider) IsAvailable(ctx context.Context) bool {
	return p.config.APIEndpoint != ""
}

func (p *RemoteProvider) callAPI(ctx context.Context, req QuoteRequest) (Quote, error) {
	requestBody, err := json.Marshal(req)
	if err != nil {
		return Quote{}, common.InternalError{Message: "failed to marshal quote request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.APIEndpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return Quote{}, common.InternalError{Message: "failed to create quote request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return Quote{}, &apiStatusError{statusCode: 0, message: err.Error()}
	}
	defer httpResp.Body.Close()

	responseBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Quote{}, &apiStatusError{statusCode: 0, message: err.Error()}
	}

	if httpResp.StatusCode != http.StatusOK {
		return Quote{}, &apiStatusError{statusCode: httpResp.StatusCode, message: string(responseBody)}
	}

	var resp remoteQuoteResponse
	if err := json.Unmarshal(responseBody, &resp); err != nil {
		return Quote{}, common.InternalError{Message: "failed to parse quote response", Cause: err}
	}
	if resp.Error != "" {
		return Quote{}, common.InternalError{Message: "quote API returned error: " + resp.Error}
	}
	if resp.Text == "" {
		return Quote{}, &apiStatusError{statusCode: httpResp.StatusCode, message: "empty quote in response"}
	}

	return Quote{Text: resp.Text, Category: resp.Category}, nil
}

// apiStatusError marks HTTP-level failures so the retry loop can decide
// whether another attempt is worthwhile. A zero status means a transport
// error before any response arrived.
type apiStatusError struct {
	statusCode int
	message    string
}

func (e *apiStatusError) Error() string {
	if e.statusCode == 0 {
		return fmt.Sprintf("quote API request failed: %s", e.message)
	}
	return fmt.Sprintf("quote API returned status %d: %s", e.statusCode, e.message)
}

func isRetryableStatus(err error) bool {
	statusErr, ok := err.(*apiStatusError)
	if !ok {
		return false
	}
	switch statusErr.statusCode {
	case 0,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
