package middleware

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cristophermlima/pierce-connect/internal/pkg/auth"
	"github.com/cristophermlima/pierce-connect/internal/pkg/usercontext"
)

// BearerAuthMiddleware authenticates requests carrying a bearer token and
// stores the resolved user context for downstream handlers.
func BearerAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing bearer token"})
		}

		store := auth.GetTokenStore()
		if store == nil {
			log.Print("bearer middleware: token store unavailable")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Auth unavailable"})
		}

		id, err := store.Lookup(token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid or expired token"})
			}
			log.Printf("bearer token lookup failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Token verification failed"})
		}

		usercontext.SetUserContext(c, usercontext.UserContext{
			UserID:     id.UserID,
			Email:      id.Email,
			Username:   id.Name,
			IsLoggedIn: true,
			IsAdmin:    id.IsAdmin,
		})
		c.Locals(usercontext.KeyUserID, id.UserID)
		c.Locals(usercontext.KeyIsAdmin, id.IsAdmin)

		return c.Next()
	}
}

// OptionalBearerAuth resolves a bearer token when present but lets anonymous
// requests pass through. Public listing routes use it so the same handler can
// serve both audiences.
func OptionalBearerAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return c.Next()
		}
		store := auth.GetTokenStore()
		if store == nil {
			return c.Next()
		}
		if id, err := store.Lookup(token); err == nil {
			usercontext.SetUserContext(c, usercontext.UserContext{
				UserID:     id.UserID,
				Email:      id.Email,
				Username:   id.Name,
				IsLoggedIn: true,
				IsAdmin:    id.IsAdmin,
			})
		}
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
