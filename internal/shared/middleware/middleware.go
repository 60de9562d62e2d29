package middleware

import (
	"net/http"
	"strings"

	"seatsense/internal/shared/config"
	"seatsense/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Context keys populated by SessionAuthWithConfig
const (
	ContextSessionID = "session_id"
	ContextVenueID   = "venue_id"
)

// SessionAuthWithConfig validates the bearer token minted when a session was
// created and binds the session identity onto the request context.
// Session-scoped routes refuse requests carrying no token or a token for a
// different session.
func SessionAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.JWT.Secret), nil
		})

		if err != nil || !token.Valid {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token claims", nil, nil)
			c.Abort()
			return
		}

		if tokenType, ok := claims["type"]; !ok || tokenType != "session" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid token type", nil, nil)
			c.Abort()
			return
		}

		c.Set(ContextSessionID, claims[ContextSessionID])
		c.Set(ContextVenueID, claims[ContextVenueID])

		c.Next()
	}
}

// RequireSessionParam rejects requests whose :sessionId path parameter does not
// match the authenticated session. A token grants access to its own session
// only.
func RequireSessionParam() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, exists := c.Get(ContextSessionID)
		if !exists {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "session not found in context", nil, nil)
			c.Abort()
			return
		}

		param := c.Param("sessionId")
		if param != "" && param != sessionID {
			response.RespondJSON(c, "error", http.StatusForbidden, "token does not match session", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
