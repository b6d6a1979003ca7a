package entitlements

import "strings"

type Tier string

const (
	TierFree     Tier = "free"
	TierPro      Tier = "pro"
	TierBusiness Tier = "business"
)

// NormalizeTier maps arbitrary tier strings onto the known set.
func NormalizeTier(tier string) Tier {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case string(TierPro):
		return TierPro
	case string(TierBusiness):
		return TierBusiness
	default:
		return TierFree
	}
}

// Rank orders tiers so that a "best tier wins" selection is deterministic
// when a user somehow holds more than one active subscription.
func Rank(tier Tier) int {
	switch NormalizeTier(string(tier)) {
	case TierBusiness:
		return 2
	case TierPro:
		return 1
	default:
		return 0
	}
}

// Covers reports whether the given tier satisfies a required minimum tier.
func Covers(tier, required Tier) bool {
	return Rank(tier) >= Rank(required)
}

// DeriveTierFromProductName maps a billing product display name to a tier.
// Product names are bilingual (pt-BR/en), so both keyword sets are checked.
// This is only a fallback for products missing from the plan catalog; the
// catalog's product-ref mapping is authoritative. Unknown paid products
// default to pro rather than free because the subscription is already paid.
func DeriveTierFromProductName(name string) Tier {
	n := strings.ToLower(strings.TrimSpace(name))
	if strings.Contains(n, "business") || strings.Contains(n, "empresa") {
		return TierBusiness
	}
	if strings.Contains(n, "pro") || strings.Contains(n, "profissional") {
		return TierPro
	}
	return TierPro
}

// AllowedListings returns which paid marketplace listings a tier may create.
func AllowedListings(tier Tier) (piercer, event, supplier bool) {
	switch NormalizeTier(string(tier)) {
	case TierBusiness:
		return true, true, true
	case TierPro:
		return true, true, false
	default:
		return false, false, false
	}
}
