package billing

import (
	"context"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	bpsession "github.com/stripe/stripe-go/v76/billingportal/session"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/price"
	"github.com/stripe/stripe-go/v76/product"
	"github.com/stripe/stripe-go/v76/subscription"

	"github.com/cristophermlima/pierce-connect/internal/pkg/env"
)

// StripeProvider implements Provider on top of the Stripe SDK.
type StripeProvider struct{}

// NewStripeProviderFromEnv configures the global Stripe key and returns the
// provider. The SDK serializes its own calls; no further state is kept here.
func NewStripeProviderFromEnv() *StripeProvider {
	stripe.Key = strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", ""))
	return &StripeProvider{}
}

func (p *StripeProvider) FindCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := customer.List(params)
	if iter.Next() {
		c := iter.Customer()
		return &Customer{ID: c.ID, Email: c.Email}, nil
	}
	if err := iter.Err(); err != nil {
		return nil, wrapProviderErr("customer.list", err)
	}
	return nil, nil
}

func (p *StripeProvider) CreateCustomer(ctx context.Context, email string, metadata map[string]string) (*Customer, error) {
	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	c, err := customer.New(params)
	if err != nil {
		return nil, wrapProviderErr("customer.create", err)
	}
	return &Customer{ID: c.ID, Email: c.Email}, nil
}

func (p *StripeProvider) FindPriceByLookupKey(ctx context.Context, lookupKey string) (*Price, error) {
	params := &stripe.PriceListParams{
		LookupKeys: stripe.StringSlice([]string{lookupKey}),
		Active:     stripe.Bool(true),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := price.List(params)
	if iter.Next() {
		return convertPrice(iter.Price()), nil
	}
	if err := iter.Err(); err != nil {
		return nil, wrapProviderErr("price.list", err)
	}
	return nil, nil
}

func (p *StripeProvider) ListActiveRecurringPrices(ctx context.Context, productRef string) ([]Price, error) {
	params := &stripe.PriceListParams{
		Product: stripe.String(productRef),
		Active:  stripe.Bool(true),
		Type:    stripe.String(string(stripe.PriceTypeRecurring)),
	}
	params.Context = ctx

	var prices []Price
	iter := price.List(params)
	for iter.Next() {
		prices = append(prices, *convertPrice(iter.Price()))
	}
	if err := iter.Err(); err != nil {
		return nil, wrapProviderErr("price.list", err)
	}
	return prices, nil
}

func (p *StripeProvider) CreateRecurringPrice(ctx context.Context, in CreatePriceParams) (*Price, error) {
	params := &stripe.PriceParams{
		Product:    stripe.String(in.ProductRef),
		UnitAmount: stripe.Int64(in.Amount),
		Currency:   stripe.String(strings.ToLower(in.Currency)),
		Recurring: &stripe.PriceRecurringParams{
			Interval:      stripe.String(string(in.Interval)),
			IntervalCount: stripe.Int64(in.IntervalCount),
		},
	}
	params.Context = ctx
	if in.LookupKey != "" {
		params.LookupKey = stripe.String(in.LookupKey)
		// Reclaim the key if an archived price still holds it.
		params.TransferLookupKey = stripe.Bool(true)
	}
	if in.Nickname != "" {
		params.Nickname = stripe.String(in.Nickname)
	}

	created, err := price.New(params)
	if err != nil {
		return nil, wrapProviderErr("price.create", err)
	}
	return convertPrice(created), nil
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, in CheckoutParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(in.CustomerID),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(in.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := session.New(params)
	if err != nil {
		return "", wrapProviderErr("checkout.session.create", err)
	}
	return s.URL, nil
}

func (p *StripeProvider) ListActiveSubscriptions(ctx context.Context, customerID string) ([]Subscription, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	params.Context = ctx

	var subs []Subscription
	iter := subscription.List(params)
	for iter.Next() {
		subs = append(subs, convertSubscription(iter.Subscription()))
	}
	if err := iter.Err(); err != nil {
		return nil, wrapProviderErr("subscription.list", err)
	}
	return subs, nil
}

func (p *StripeProvider) GetProduct(ctx context.Context, productRef string) (*Product, error) {
	params := &stripe.ProductParams{}
	params.Context = ctx

	prod, err := product.Get(productRef, params)
	if err != nil {
		return nil, wrapProviderErr("product.get", err)
	}
	return &Product{ID: prod.ID, Name: prod.Name}, nil
}

func (p *StripeProvider) CreatePortalSession(ctx context.Context, in PortalParams) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(in.CustomerID),
		ReturnURL: stripe.String(in.ReturnURL),
	}
	params.Context = ctx

	s, err := bpsession.New(params)
	if err != nil {
		return "", wrapProviderErr("billingportal.session.create", err)
	}
	return s.URL, nil
}

func convertPrice(p *stripe.Price) *Price {
	out := &Price{
		ID:        p.ID,
		Amount:    p.UnitAmount,
		Currency:  string(p.Currency),
		LookupKey: p.LookupKey,
	}
	if p.Product != nil {
		out.ProductRef = p.Product.ID
	}
	if p.Recurring != nil {
		out.Interval = Interval(p.Recurring.Interval)
		out.IntervalCount = p.Recurring.IntervalCount
	}
	return out
}

func convertSubscription(s *stripe.Subscription) Subscription {
	out := Subscription{
		ID:                s.ID,
		Status:            string(s.Status),
		CurrentPeriodEnd:  time.Unix(s.CurrentPeriodEnd, 0),
		CancelAtPeriodEnd: s.CancelAtPeriodEnd,
	}
	if s.Customer != nil {
		out.CustomerID = s.Customer.ID
	}
	if s.Items != nil && len(s.Items.Data) > 0 && s.Items.Data[0].Price != nil {
		out.PriceID = s.Items.Data[0].Price.ID
		if s.Items.Data[0].Price.Product != nil {
			out.ProductRef = s.Items.Data[0].Price.Product.ID
		}
	}
	return out
}
