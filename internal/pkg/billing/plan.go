package billing

import (
	"strings"

	"github.com/cristophermlima/pierce-connect/internal/pkg/entitlements"
	"github.com/cristophermlima/pierce-connect/internal/pkg/env"
)

type Interval string

const (
	IntervalMonth Interval = "month"
	IntervalYear  Interval = "year"
)

// Plan is a compiled-in subscription offering. Plans are immutable at
// runtime; amounts are in minor currency units.
type Plan struct {
	ID            string
	Audience      string
	ProductRef    string
	Interval      Interval
	IntervalCount int64
	Amount        int64
	Currency      string
	Tier          entitlements.Tier
}

const (
	AudiencePiercer   = "piercer"
	AudienceOrganizer = "event_organizer"
	AudienceSupplier  = "supplier"
)

// Catalog holds the plan table plus price ids that were provisioned
// out-of-band (per environment) and therefore never need lazy creation.
type Catalog struct {
	plans            map[string]Plan
	registeredPrices map[string]string
	tierByProduct    map[string]entitlements.Tier
}

func NewCatalog(plans []Plan, registeredPrices map[string]string) *Catalog {
	c := &Catalog{
		plans:            make(map[string]Plan, len(plans)),
		registeredPrices: make(map[string]string, len(registeredPrices)),
		tierByProduct:    make(map[string]entitlements.Tier, len(plans)),
	}
	for _, p := range plans {
		c.plans[p.ID] = p
		if p.ProductRef != "" {
			c.tierByProduct[p.ProductRef] = p.Tier
		}
	}
	for id, priceID := range registeredPrices {
		if strings.TrimSpace(priceID) != "" {
			c.registeredPrices[id] = strings.TrimSpace(priceID)
		}
	}
	return c
}

// Plan returns the catalog entry for a plan id.
func (c *Catalog) Plan(id string) (Plan, bool) {
	p, ok := c.plans[strings.TrimSpace(id)]
	return p, ok
}

// RegisteredPrice returns a pre-provisioned price id for a plan, if any.
func (c *Catalog) RegisteredPrice(id string) (string, bool) {
	priceID, ok := c.registeredPrices[strings.TrimSpace(id)]
	return priceID, ok
}

// TierForProduct maps a provider product ref to its entitlement tier. This is
// the stable mapping consulted before any product-name keyword fallback.
func (c *Catalog) TierForProduct(productRef string) (entitlements.Tier, bool) {
	t, ok := c.tierByProduct[strings.TrimSpace(productRef)]
	return t, ok
}

// defaultPlans is the static offering table: three audiences, monthly and
// yearly recurrence each. Supplier plans carry the business tier.
var defaultPlans = []Plan{
	{ID: "piercer_monthly", Audience: AudiencePiercer, ProductRef: "prod_piercer", Interval: IntervalMonth, IntervalCount: 1, Amount: 4990, Currency: "brl", Tier: entitlements.TierPro},
	{ID: "piercer_yearly", Audience: AudiencePiercer, ProductRef: "prod_piercer", Interval: IntervalYear, IntervalCount: 1, Amount: 49900, Currency: "brl", Tier: entitlements.TierPro},
	{ID: "event_organizer_monthly", Audience: AudienceOrganizer, ProductRef: "prod_event_organizer", Interval: IntervalMonth, IntervalCount: 1, Amount: 3990, Currency: "brl", Tier: entitlements.TierPro},
	{ID: "event_organizer_yearly", Audience: AudienceOrganizer, ProductRef: "prod_event_organizer", Interval: IntervalYear, IntervalCount: 1, Amount: 39900, Currency: "brl", Tier: entitlements.TierPro},
	{ID: "supplier_monthly", Audience: AudienceSupplier, ProductRef: "prod_supplier", Interval: IntervalMonth, IntervalCount: 1, Amount: 9990, Currency: "brl", Tier: entitlements.TierBusiness},
	{ID: "supplier_yearly", Audience: AudienceSupplier, ProductRef: "prod_supplier", Interval: IntervalYear, IntervalCount: 1, Amount: 99900, Currency: "brl", Tier: entitlements.TierBusiness},
}

// DefaultCatalog builds the catalog from the static plan table. Product refs
// and pre-registered price ids come from the environment so that test and
// live Stripe accounts can coexist.
func DefaultCatalog() *Catalog {
	plans := make([]Plan, 0, len(defaultPlans))
	registered := make(map[string]string, len(defaultPlans))
	for _, p := range defaultPlans {
		if ref := env.GetEnv(productRefEnvKey(p.ID), ""); ref != "" {
			p.ProductRef = ref
		}
		plans = append(plans, p)
		if priceID := env.GetEnv(priceEnvKey(p.ID), ""); priceID != "" {
			registered[p.ID] = priceID
		}
	}
	return NewCatalog(plans, registered)
}

func priceEnvKey(planID string) string {
	return "STRIPE_PRICE_" + strings.ToUpper(planID)
}

func productRefEnvKey(planID string) string {
	return "STRIPE_PRODUCT_" + strings.ToUpper(planID)
}
