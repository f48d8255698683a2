package middleware

import (
	"strings"

	"carecalendar-api/internal/common"

	"github.com/gin-gonic/gin"
)

// IdentityHeader carries the caller's Telegram user ID. The calendar web
// app injects it after the Telegram auth handshake.
const IdentityHeader = "X-Telegram-User-ID"

const identityContextKey = "telegram_user_id"

// TelegramIdentity resolves the caller's identity from the request header
// and stores it on the context. Requests without the header pass through;
// handlers that need an identity reject them.
func TelegramIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(IdentityHeader)); id != "" {
			c.Set(identityContextKey, common.UserID(id))
		}
		c.Next()
	}
}

// CurrentUserID returns the caller's identity, or an AuthenticationError
// when the request carried none.
func CurrentUserID(c *gin.Context) (common.UserID, error) {
	value, exists := c.Get(identityContextKey)
	if !exists {
		return "", common.AuthenticationError{Reason: "missing identity header"}
	}

	userID, ok := value.(common.UserID)
	if !ok || userID == "" {
		return "", common.AuthenticationError{Reason: "invalid identity header"}
	}

	return userID, nil
}
