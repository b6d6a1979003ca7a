package middleware

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cristophermlima/pierce-connect/internal/pkg/billing"
	"github.com/cristophermlima/pierce-connect/internal/pkg/entitlements"
	"github.com/cristophermlima/pierce-connect/internal/pkg/usercontext"
)

// RequireTier gates a route on a live subscription of at least the given
// tier. The entitlement is derived from the billing provider on every
// request; the local subscriber row is never consulted. Fails closed: if the
// provider cannot be reached the request is denied.
func RequireTier(getService func() *billing.Service, required entitlements.Tier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uc := usercontext.GetUserContext(c)
		if !uc.IsLoggedIn {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "login required"})
		}

		svc := getService()
		if svc == nil {
			log.Print("entitlement middleware: billing service unavailable")
			return subscriptionRequired(c)
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 15*time.Second)
		defer cancel()

		ent, err := svc.GetEntitlement(ctx, billing.Identity{UserID: uc.UserID, Email: uc.Email})
		if err != nil {
			log.Printf("entitlement check failed for user %d: %v", uc.UserID, err)
			return subscriptionRequired(c)
		}
		if !ent.Subscribed || !entitlements.Covers(ent.Tier, required) {
			return subscriptionRequired(c)
		}

		return c.Next()
	}
}

func subscriptionRequired(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error":   "subscription_required",
		"message": "An active subscription is required for this action",
	})
}
