package billing

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cristophermlima/pierce-connect/app/models"
	"github.com/cristophermlima/pierce-connect/internal/pkg/entitlements"
	"gorm.io/gorm"
)

// Identity is the authenticated caller of a billing operation.
type Identity struct {
	UserID uint
	Email  string
}

// Entitlement is the live, derived subscription state for a user. It is
// computed fresh from the provider on every query and never persisted.
type Entitlement struct {
	Subscribed     bool
	Tier           entitlements.Tier
	PeriodEnd      time.Time
	SubscriptionID string
}

// Service implements the plan -> customer -> price -> session -> entitlement
// reconciliation pipeline against an injected provider and local repository.
type Service struct {
	provider Provider
	catalog  *Catalog
	repo     Repository
}

// NewService creates a billing service from injected collaborators.
func NewService(provider Provider, catalog *Catalog, repo Repository) *Service {
	return &Service{provider: provider, catalog: catalog, repo: repo}
}

// NewServiceFromEnv wires the Stripe provider, the default plan catalog and a
// GORM-backed repository.
func NewServiceFromEnv(db *gorm.DB) *Service {
	return NewService(NewStripeProviderFromEnv(), DefaultCatalog(), NewRepository(db))
}

// ResolveCustomer finds or creates the provider customer for a user.
// Resolution order: stored customer id on the profile, provider lookup by
// exact email, lazy create tagged with the user id. The resolved id is
// written back to the profile so stored-id and by-email resolution cannot
// drift. Idempotent across repeated calls for the same email.
func (s *Service) ResolveCustomer(ctx context.Context, id Identity) (string, error) {
	if id.UserID == 0 || strings.TrimSpace(id.Email) == "" {
		return "", ErrNotAuthenticated
	}

	profile, err := s.repo.GetProfileByUserID(id.UserID)
	if err != nil {
		return "", err
	}
	if profile.StripeCustomerID != "" {
		return profile.StripeCustomerID, nil
	}

	existing, err := s.provider.FindCustomerByEmail(ctx, id.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		if err := s.repo.SaveProfileCustomerID(id.UserID, existing.ID); err != nil {
			return "", err
		}
		return existing.ID, nil
	}

	created, err := s.provider.CreateCustomer(ctx, id.Email, map[string]string{
		"user_id": fmt.Sprintf("%d", id.UserID),
	})
	if err != nil {
		return "", err
	}
	log.Printf("[billing] step=customer_created user_id=%d customer_id=%s", id.UserID, created.ID)
	if err := s.repo.SaveProfileCustomerID(id.UserID, created.ID); err != nil {
		return "", err
	}
	return created.ID, nil
}

// lookupCustomerID is the read-only variant used by entitlement and portal:
// stored id first, then email lookup, never a create. Returns "" when the
// user has no provider customer at all.
func (s *Service) lookupCustomerID(ctx context.Context, id Identity) (string, error) {
	profile, err := s.repo.GetProfileByUserID(id.UserID)
	if err != nil {
		return "", err
	}
	if profile.StripeCustomerID != "" {
		return profile.StripeCustomerID, nil
	}

	existing, err := s.provider.FindCustomerByEmail(ctx, id.Email)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "", nil
	}
	if err := s.repo.SaveProfileCustomerID(id.UserID, existing.ID); err != nil {
		return "", err
	}
	return existing.ID, nil
}

// ResolvePrice maps a plan id to a provider price id.
// Resolution order: pre-registered price id, active price pinned by
// lookup_key == planID, any active recurring price on the plan's product,
// lazy creation from the catalog amount/interval. Prices created here carry
// the plan id as lookup_key so a second resolution never creates a duplicate.
func (s *Service) ResolvePrice(ctx context.Context, planID string) (string, error) {
	plan, ok := s.catalog.Plan(planID)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlan, planID)
	}

	if priceID, ok := s.catalog.RegisteredPrice(planID); ok {
		return priceID, nil
	}

	pinned, err := s.provider.FindPriceByLookupKey(ctx, plan.ID)
	if err != nil {
		return "", err
	}
	if pinned != nil {
		return pinned.ID, nil
	}

	prices, err := s.provider.ListActiveRecurringPrices(ctx, plan.ProductRef)
	if err != nil {
		return "", err
	}
	if len(prices) > 0 {
		return prices[0].ID, nil
	}

	created, err := s.provider.CreateRecurringPrice(ctx, CreatePriceParams{
		ProductRef:    plan.ProductRef,
		Amount:        plan.Amount,
		Currency:      plan.Currency,
		Interval:      plan.Interval,
		IntervalCount: plan.IntervalCount,
		LookupKey:     plan.ID,
		Nickname:      plan.ID,
	})
	if err != nil {
		return "", err
	}
	log.Printf("[billing] step=price_created plan=%s price_id=%s", plan.ID, created.ID)
	return created.ID, nil
}

// StartCheckout runs the full checkout pipeline and returns the hosted
// redirect URL. Any failing step aborts the whole operation; retrying the
// whole call is safe because customer and price resolution are idempotent.
// Repeated calls create independent sessions, which expire provider-side.
func (s *Service) StartCheckout(ctx context.Context, id Identity, planID, origin string) (string, error) {
	if id.UserID == 0 || strings.TrimSpace(id.Email) == "" {
		return "", ErrNotAuthenticated
	}
	plan, ok := s.catalog.Plan(planID)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlan, planID)
	}

	log.Printf("[billing] step=checkout_start user_id=%d plan=%s", id.UserID, plan.ID)

	customerID, err := s.ResolveCustomer(ctx, id)
	if err != nil {
		return "", err
	}

	priceID, err := s.ResolvePrice(ctx, plan.ID)
	if err != nil {
		return "", err
	}

	base := strings.TrimRight(origin, "/")
	url, err := s.provider.CreateCheckoutSession(ctx, CheckoutParams{
		CustomerID: customerID,
		PriceID:    priceID,
		SuccessURL: base + "/subscription/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  base + "/subscription/cancel",
		Metadata: map[string]string{
			"user_id": fmt.Sprintf("%d", id.UserID),
			"plan_id": plan.ID,
		},
	})
	if err != nil {
		return "", err
	}

	// Provisional record only. Authorization never trusts this row; the
	// authoritative state comes from GetEntitlement at query time.
	if err := s.repo.UpsertSubscriber(&models.Subscriber{
		UserID:           id.UserID,
		Email:            id.Email,
		StripeCustomerID: customerID,
		PlanTier:         plan.ID,
		Subscribed:       false,
	}); err != nil {
		return "", err
	}

	log.Printf("[billing] step=checkout_session_created user_id=%d plan=%s customer_id=%s", id.UserID, plan.ID, customerID)
	return url, nil
}

// GetEntitlement derives the live subscription state for a user from the
// provider. No customer or no active subscription short-circuits to
// unsubscribed without creating anything. With several active subscriptions
// the highest-ranked tier wins deterministically.
func (s *Service) GetEntitlement(ctx context.Context, id Identity) (*Entitlement, error) {
	if id.UserID == 0 || strings.TrimSpace(id.Email) == "" {
		return nil, ErrNotAuthenticated
	}

	customerID, err := s.lookupCustomerID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customerID == "" {
		return &Entitlement{Subscribed: false, Tier: entitlements.TierFree}, nil
	}

	subs, err := s.provider.ListActiveSubscriptions(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return &Entitlement{Subscribed: false, Tier: entitlements.TierFree}, nil
	}

	best := subs[0]
	bestTier, err := s.tierForSubscription(ctx, subs[0])
	if err != nil {
		return nil, err
	}
	for _, sub := range subs[1:] {
		tier, err := s.tierForSubscription(ctx, sub)
		if err != nil {
			return nil, err
		}
		if entitlements.Rank(tier) > entitlements.Rank(bestTier) {
			best = sub
			bestTier = tier
		}
	}

	return &Entitlement{
		Subscribed:     true,
		Tier:           bestTier,
		PeriodEnd:      best.CurrentPeriodEnd,
		SubscriptionID: best.ID,
	}, nil
}

// tierForSubscription prefers the stable product-ref mapping from the plan
// catalog and falls back to product display-name keywords only for products
// outside the catalog.
func (s *Service) tierForSubscription(ctx context.Context, sub Subscription) (entitlements.Tier, error) {
	if tier, ok := s.catalog.TierForProduct(sub.ProductRef); ok {
		return tier, nil
	}
	if sub.ProductRef == "" {
		return entitlements.TierPro, nil
	}
	prod, err := s.provider.GetProduct(ctx, sub.ProductRef)
	if err != nil {
		return "", err
	}
	return entitlements.DeriveTierFromProductName(prod.Name), nil
}

// OpenPortal creates a self-service billing portal session for an existing
// customer. A user that never went through checkout has no customer and gets
// ErrNoCustomer; the portal never creates one.
func (s *Service) OpenPortal(ctx context.Context, id Identity, origin string) (string, error) {
	if id.UserID == 0 || strings.TrimSpace(id.Email) == "" {
		return "", ErrNotAuthenticated
	}

	customerID, err := s.lookupCustomerID(ctx, id)
	if err != nil {
		return "", err
	}
	if customerID == "" {
		return "", ErrNoCustomer
	}

	url, err := s.provider.CreatePortalSession(ctx, PortalParams{
		CustomerID: customerID,
		ReturnURL:  strings.TrimRight(origin, "/") + "/profile",
	})
	if err != nil {
		return "", err
	}
	log.Printf("[billing] step=portal_session_created user_id=%d customer_id=%s", id.UserID, customerID)
	return url, nil
}
