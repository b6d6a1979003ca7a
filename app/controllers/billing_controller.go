package controllers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/cristophermlima/pierce-connect/internal/pkg/billing"
	"github.com/cristophermlima/pierce-connect/internal/pkg/usercontext"
)

const billingRequestTimeout = 20 * time.Second

// BillingController serves the subscription endpoints backed by the billing
// reconciliation service.
type BillingController struct {
	svc *billing.Service
}

// NewBillingController creates a billing controller around the given service.
func NewBillingController(svc *billing.Service) *BillingController {
	return &BillingController{svc: svc}
}

// checkSubscriptionResponse is the wire shape for subscription status checks.
// The optional fields are omitted entirely for unsubscribed users.
type checkSubscriptionResponse struct {
	Subscribed       bool   `json:"subscribed"`
	SubscriptionTier string `json:"subscription_tier,omitempty"`
	SubscriptionEnd  string `json:"subscription_end,omitempty"`
	SubscriptionID   string `json:"subscription_id,omitempty"`
}

// HandleCheckSubscription derives the caller's live subscription state from
// the billing provider.
func (bc *BillingController) HandleCheckSubscription(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	ctx, cancel := context.WithTimeout(c.UserContext(), billingRequestTimeout)
	defer cancel()

	ent, err := bc.svc.GetEntitlement(ctx, billing.Identity{UserID: uc.UserID, Email: uc.Email})
	if err != nil {
		log.Printf("check subscription failed for user %d: %v", uc.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "could not verify subscription status")
	}

	resp := checkSubscriptionResponse{Subscribed: ent.Subscribed}
	if ent.Subscribed {
		resp.SubscriptionTier = string(ent.Tier)
		resp.SubscriptionEnd = ent.PeriodEnd.UTC().Format(time.RFC3339)
		resp.SubscriptionID = ent.SubscriptionID
	}
	return c.JSON(resp)
}

// HandleCreateSubscriptionCheckout starts a hosted checkout for the requested
// plan and returns the redirect URL.
func (bc *BillingController) HandleCreateSubscriptionCheckout(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	var body struct {
		PlanType string `json:"planType"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), billingRequestTimeout)
	defer cancel()

	url, err := bc.svc.StartCheckout(ctx, billing.Identity{UserID: uc.UserID, Email: uc.Email}, body.PlanType, requestOrigin(c))
	if err != nil {
		if errors.Is(err, billing.ErrNotAuthenticated) {
			return jsonError(c, fiber.StatusUnauthorized, "login required")
		}
		log.Printf("checkout failed for user %d plan %q: %v", uc.UserID, body.PlanType, err)
		return jsonError(c, fiber.StatusInternalServerError, "could not start checkout")
	}

	return c.JSON(fiber.Map{"url": url})
}

// HandleCustomerPortal opens the self-service billing portal for an existing
// customer.
func (bc *BillingController) HandleCustomerPortal(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)

	ctx, cancel := context.WithTimeout(c.UserContext(), billingRequestTimeout)
	defer cancel()

	url, err := bc.svc.OpenPortal(ctx, billing.Identity{UserID: uc.UserID, Email: uc.Email}, requestOrigin(c))
	if err != nil {
		if errors.Is(err, billing.ErrNoCustomer) {
			return jsonError(c, fiber.StatusBadRequest, "no billing account for this user")
		}
		if errors.Is(err, billing.ErrNotAuthenticated) {
			return jsonError(c, fiber.StatusUnauthorized, "login required")
		}
		log.Printf("portal session failed for user %d: %v", uc.UserID, err)
		return jsonError(c, fiber.StatusInternalServerError, "could not open billing portal")
	}

	return c.JSON(fiber.Map{"url": url})
}
