// Package middleware provides identity, logging, rate limiting and tracing
// middleware for the application.
package middleware

import (
	"context"
	"strconv"
	"strings"

	"threadnest/internal/config"
	"threadnest/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// HeaderCurrentUserID carries the acting user's id on every authenticated request.
const HeaderCurrentUserID = "currentUserId"

// HeaderTargetUserID carries the subject user's id on user lookup requests.
const HeaderTargetUserID = "targetUserId"

// Identity resolves the acting user for a request. Clients identify either
// with the currentUserId header (the legacy wire contract) or with a Bearer
// JWT issued at login. The resolved id is stored in c.Locals("userID") and in
// the user context for the context-aware logger.
//
// required=false leaves userID unset (zero) when no identity is presented.
func Identity(cfg *config.Config, required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := resolveUserID(c, cfg)
		if !ok && required {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authentication required"))
		}
		if ok {
			c.Locals("userID", userID)
			ctx := context.WithValue(c.UserContext(), UserIDKey, userID)
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}

func resolveUserID(c *fiber.Ctx, cfg *config.Config) (uint, bool) {
	// 1. Bearer token takes precedence when present.
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if id, ok := parseToken(parts[1], cfg.JWTSecret); ok {
				return id, true
			}
		}
		return 0, false
	}

	// 2. Fall back to the plain currentUserId header.
	raw := c.Get(HeaderCurrentUserID)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseToken validates an HS256 JWT and extracts the user id from the sub claim.
func parseToken(tokenString, secret string) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "threadnest-api" {
		return 0, false
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "threadnest-client" {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return 0, false
	}
	return uint(userID), true
}
