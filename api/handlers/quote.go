package handlers

import (
	"net/http"

	"carecalendar-api/internal/common"
	"carecalendar-api/internal/quote"
	"carecalendar-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// QuoteHandler serves self-care quotes
type QuoteHandler struct {
	quoteService quote.QuoteService
	logger       *logger.Logger
}

// NewQuoteHandler creates a new QuoteHandler instance
func NewQuoteHandler(quoteService quote.QuoteService, logger *logger.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// GetSelfCareQuote returns a quote for the requested mood and category.
// An empty body is a request for any quote.
func (h *QuoteHandler) GetSelfCareQuote(c *gin.Context) {
	var request quote.QuoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			respondError(c, h.logger, common.ValidationError{Field: "body", Message: "invalid request body"})
			return
		}
	}

	result, err := h.quoteService.GetSelfCareQuote(c.Request.Context(), request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
