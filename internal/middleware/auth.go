package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// A private key for context access
type contextKey string

const userContextKey = contextKey("user")

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthMiddleware creates a middleware that verifies Firebase ID tokens.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized access",
				"message": "Missing or invalid token",
			})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			log.Printf("Error verifying Firebase ID token: %v", err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		// Store the verified token claims in the context for handlers to use
		ctx := context.WithValue(c.Request.Context(), userContextKey, token)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ForContext finds the user from the context.
func ForContext(ctx context.Context) *auth.Token {
	raw, _ := ctx.Value(userContextKey).(*auth.Token)
	return raw
}

// EmailForContext returns the verified email claim, or "" when the request
// carries no token.
func EmailForContext(ctx context.Context) string {
	token := ForContext(ctx)
	if token == nil {
		return ""
	}
	email, _ := token.Claims["email"].(string)
	return email
}

// WithToken returns a copy of ctx carrying token, as AuthMiddleware does.
func WithToken(ctx context.Context, token *auth.Token) context.Context {
	return context.WithValue(ctx, userContextKey, token)
}
