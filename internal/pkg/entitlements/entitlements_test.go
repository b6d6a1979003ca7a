package entitlements

import "testing"

func TestNormalizeTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{in: "free", want: TierFree},
		{in: "pro", want: TierPro},
		{in: "business", want: TierBusiness},
		{in: "BUSINESS", want: TierBusiness},
		{in: "invalid", want: TierFree},
	}

	for _, tt := range tests {
		if got := NormalizeTier(tt.in); got != tt.want {
			t.Fatalf("NormalizeTier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRank(t *testing.T) {
	if Rank(TierFree) >= Rank(TierPro) {
		t.Fatalf("expected pro to outrank free")
	}
	if Rank(TierPro) >= Rank(TierBusiness) {
		t.Fatalf("expected business to outrank pro")
	}
}

func TestCovers(t *testing.T) {
	if !Covers(TierBusiness, TierPro) {
		t.Fatalf("expected business to cover pro")
	}
	if Covers(TierPro, TierBusiness) {
		t.Fatalf("expected pro not to cover business")
	}
	if !Covers(TierPro, TierPro) {
		t.Fatalf("expected a tier to cover itself")
	}
}

func TestDeriveTierFromProductName(t *testing.T) {
	tests := []struct {
		name string
		want Tier
	}{
		{name: "Plano Business Anual", want: TierBusiness},
		{name: "Plano Empresa Mensal", want: TierBusiness},
		{name: "Plano Pro Mensal", want: TierPro},
		{name: "Plano Profissional", want: TierPro},
		{name: "Plano Organizador de Eventos", want: TierPro},
	}

	for _, tt := range tests {
		if got := DeriveTierFromProductName(tt.name); got != tt.want {
			t.Fatalf("DeriveTierFromProductName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAllowedListings(t *testing.T) {
	piercer, event, supplier := AllowedListings(TierFree)
	if piercer || event || supplier {
		t.Fatalf("expected free tier to allow no listings")
	}
	piercer, event, supplier = AllowedListings(TierPro)
	if !piercer || !event || supplier {
		t.Fatalf("expected pro tier to allow piercer and event listings only")
	}
	piercer, event, supplier = AllowedListings(TierBusiness)
	if !piercer || !event || !supplier {
		t.Fatalf("expected business tier to allow all listings")
	}
}
