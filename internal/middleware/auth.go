package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog/log"
	"github.com/unsa-memon/quiz-app-backend/internal/dto"
)

const (
	ContextUserID = "userId"
	ContextRole   = "role"
)

// Identity resolves an optional bearer token into a user id on the
// context. A missing or invalid token is not an error here: the request
// continues anonymous and each endpoint decides whether it needs auth.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		tokenString := authHeader[len("Bearer "):]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Warn().Err(err).Msg("Identity: invalid bearer token, continuing anonymous")
			c.Next()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Next()
			return
		}
		if sub, ok := claims["sub"].(string); ok && sub != "" {
			c.Set(ContextUserID, sub)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(ContextRole, role)
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 when no identity was resolved. Quiz
// authoring sits behind this; attempt submission does not.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" for anonymous callers.
func UserID(c *gin.Context) string {
	if v, ok := c.Get(ContextUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsAdmin reports whether the token carried the admin role.
func IsAdmin(c *gin.Context) bool {
	if v, ok := c.Get(ContextRole); ok {
		if s, ok := v.(string); ok {
			return s == "admin"
		}
	}
	return false
}
