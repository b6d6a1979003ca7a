package billing

import (
	"testing"

	"github.com/cristophermlima/pierce-connect/internal/pkg/entitlements"
)

func TestCatalogPlanLookup(t *testing.T) {
	c := DefaultCatalog()

	plan, ok := c.Plan("piercer_monthly")
	if !ok {
		t.Fatalf("expected piercer_monthly to exist in the default catalog")
	}
	if plan.Interval != IntervalMonth || plan.IntervalCount != 1 {
		t.Fatalf("unexpected recurrence: %s x%d", plan.Interval, plan.IntervalCount)
	}
	if plan.Currency != "brl" || plan.Amount <= 0 {
		t.Fatalf("unexpected pricing: %d %s", plan.Amount, plan.Currency)
	}

	if _, ok := c.Plan("nonexistent_plan"); ok {
		t.Fatalf("expected unknown plan to be absent")
	}
}

func TestCatalogCoversAllAudiences(t *testing.T) {
	c := DefaultCatalog()
	for _, id := range []string{
		"piercer_monthly", "piercer_yearly",
		"event_organizer_monthly", "event_organizer_yearly",
		"supplier_monthly", "supplier_yearly",
	} {
		if _, ok := c.Plan(id); !ok {
			t.Fatalf("expected plan %q in the default catalog", id)
		}
	}
}

func TestCatalogTierForProduct(t *testing.T) {
	c := DefaultCatalog()

	tier, ok := c.TierForProduct("prod_supplier")
	if !ok || tier != entitlements.TierBusiness {
		t.Fatalf("expected prod_supplier to map to business, got %q (found=%v)", tier, ok)
	}
	tier, ok = c.TierForProduct("prod_piercer")
	if !ok || tier != entitlements.TierPro {
		t.Fatalf("expected prod_piercer to map to pro, got %q (found=%v)", tier, ok)
	}
	if _, ok := c.TierForProduct("prod_unrelated"); ok {
		t.Fatalf("expected unmapped product to be absent")
	}
}

func TestCatalogRegisteredPrice(t *testing.T) {
	c := NewCatalog(defaultPlans, map[string]string{
		"piercer_monthly": "price_registered_123",
		"supplier_yearly": "  ",
	})

	priceID, ok := c.RegisteredPrice("piercer_monthly")
	if !ok || priceID != "price_registered_123" {
		t.Fatalf("expected registered price, got %q (found=%v)", priceID, ok)
	}
	if _, ok := c.RegisteredPrice("supplier_yearly"); ok {
		t.Fatalf("expected blank registration to be ignored")
	}
	if _, ok := c.RegisteredPrice("event_organizer_monthly"); ok {
		t.Fatalf("expected unregistered plan to have no price")
	}
}
