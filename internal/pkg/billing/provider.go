package billing

import (
	"context"
	"time"
)

// Customer is the provider-side billing identity for a user email.
type Customer struct {
	ID    string
	Email string
}

// Price is an active recurring price attached to a provider product.
type Price struct {
	ID            string
	ProductRef    string
	Amount        int64
	Currency      string
	Interval      Interval
	IntervalCount int64
	LookupKey     string
}

// Subscription is the provider-side view of a recurring subscription.
type Subscription struct {
	ID                string
	CustomerID        string
	PriceID           string
	ProductRef        string
	Status            string
	CurrentPeriodEnd  time.Time
	CancelAtPeriodEnd bool
}

// Product carries the provider product fields the entitlement fallback needs.
type Product struct {
	ID   string
	Name string
}

// CreatePriceParams describes a recurring price to create lazily.
type CreatePriceParams struct {
	ProductRef    string
	Amount        int64
	Currency      string
	Interval      Interval
	IntervalCount int64
	LookupKey     string
	Nickname      string
}

// CheckoutParams describes a subscription-mode hosted checkout session.
type CheckoutParams struct {
	CustomerID string
	PriceID    string
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// PortalParams describes a self-service billing portal session.
type PortalParams struct {
	CustomerID string
	ReturnURL  string
}

// Provider abstracts the external billing provider. The Stripe implementation
// lives in stripe.go; tests substitute fakes. Find* methods return (nil, nil)
// when nothing matches so that absence is not an error.
type Provider interface {
	FindCustomerByEmail(ctx context.Context, email string) (*Customer, error)
	CreateCustomer(ctx context.Context, email string, metadata map[string]string) (*Customer, error)

	FindPriceByLookupKey(ctx context.Context, lookupKey string) (*Price, error)
	ListActiveRecurringPrices(ctx context.Context, productRef string) ([]Price, error)
	CreateRecurringPrice(ctx context.Context, params CreatePriceParams) (*Price, error)

	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error)

	ListActiveSubscriptions(ctx context.Context, customerID string) ([]Subscription, error)
	GetProduct(ctx context.Context, productRef string) (*Product, error)

	CreatePortalSession(ctx context.Context, params PortalParams) (string, error)
}
