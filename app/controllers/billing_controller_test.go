package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristophermlima/pierce-connect/app/models"
	"github.com/cristophermlima/pierce-connect/internal/pkg/auth"
	"github.com/cristophermlima/pierce-connect/internal/pkg/billing"
	"github.com/cristophermlima/pierce-connect/internal/pkg/middleware"
)

type stubProvider struct {
	customersByEmail map[string]*billing.Customer
	subsByCustomer   map[string][]billing.Subscription
	products         map[string]*billing.Product

	checkoutCalls int
	portalCalls   int
}

func newStubProvider() *stubProvider {
	return &stubProvider{
		customersByEmail: map[string]*billing.Customer{},
		subsByCustomer:   map[string][]billing.Subscription{},
		products:         map[string]*billing.Product{},
	}
}

func (p *stubProvider) FindCustomerByEmail(_ context.Context, email string) (*billing.Customer, error) {
	return p.customersByEmail[email], nil
}

func (p *stubProvider) CreateCustomer(_ context.Context, email string, _ map[string]string) (*billing.Customer, error) {
	c := &billing.Customer{ID: "cus_new", Email: email}
	p.customersByEmail[email] = c
	return c, nil
}

func (p *stubProvider) FindPriceByLookupKey(_ context.Context, lookupKey string) (*billing.Price, error) {
	return &billing.Price{ID: "price_" + lookupKey, LookupKey: lookupKey}, nil
}

func (p *stubProvider) ListActiveRecurringPrices(context.Context, string) ([]billing.Price, error) {
	return nil, nil
}

func (p *stubProvider) CreateRecurringPrice(_ context.Context, params billing.CreatePriceParams) (*billing.Price, error) {
	return &billing.Price{ID: "price_created", LookupKey: params.LookupKey}, nil
}

func (p *stubProvider) CreateCheckoutSession(context.Context, billing.CheckoutParams) (string, error) {
	p.checkoutCalls++
	return "https://checkout.example.com/session", nil
}

func (p *stubProvider) ListActiveSubscriptions(_ context.Context, customerID string) ([]billing.Subscription, error) {
	return p.subsByCustomer[customerID], nil
}

func (p *stubProvider) GetProduct(_ context.Context, ref string) (*billing.Product, error) {
	if prod, ok := p.products[ref]; ok {
		return prod, nil
	}
	return &billing.Product{ID: ref, Name: ref}, nil
}

func (p *stubProvider) CreatePortalSession(context.Context, billing.PortalParams) (string, error) {
	p.portalCalls++
	return "https://portal.example.com/session", nil
}

type stubRepo struct {
	profiles    map[uint]*models.Profile
	subscribers map[uint]*models.Subscriber
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		profiles:    map[uint]*models.Profile{},
		subscribers: map[uint]*models.Subscriber{},
	}
}

func (r *stubRepo) UpsertSubscriber(sub *models.Subscriber) error {
	r.subscribers[sub.UserID] = sub
	return nil
}

func (r *stubRepo) GetProfileByUserID(userID uint) (*models.Profile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	p := &models.Profile{UserID: userID}
	r.profiles[userID] = p
	return p, nil
}

func (r *stubRepo) SaveProfileCustomerID(userID uint, customerID string) error {
	p, _ := r.GetProfileByUserID(userID)
	p.StripeCustomerID = customerID
	return nil
}

type tokenMemStorage struct {
	data map[string][]byte
}

func (m *tokenMemStorage) Get(key string) ([]byte, error) { return m.data[key], nil }
func (m *tokenMemStorage) Set(key string, val []byte, _ time.Duration) error {
	m.data[key] = val
	return nil
}
func (m *tokenMemStorage) Delete(key string) error { delete(m.data, key); return nil }

func newBillingTestApp(t *testing.T, provider billing.Provider, repo billing.Repository) (*fiber.App, string) {
	t.Helper()

	store := auth.NewTokenStore(&tokenMemStorage{data: map[string][]byte{}}, time.Hour)
	auth.SetTokenStore(store)
	token, err := store.Issue(auth.Identity{UserID: 42, Email: "a@example.com", Name: "Ana"})
	require.NoError(t, err)

	svc := billing.NewService(provider, billing.DefaultCatalog(), repo)
	bc := NewBillingController(svc)

	app := fiber.New()
	group := app.Group("/api/v1/billing", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "POST, OPTIONS",
	}), middleware.BearerAuthMiddleware())
	group.Post("/check-subscription", bc.HandleCheckSubscription)
	group.Post("/create-subscription-checkout", bc.HandleCreateSubscriptionCheckout)
	group.Post("/customer-portal", bc.HandleCustomerPortal)

	return app, token
}

func TestBillingEndpointsRequireAuth(t *testing.T) {
	app, _ := newBillingTestApp(t, newStubProvider(), newStubRepo())

	for _, path := range []string{
		"/api/v1/billing/check-subscription",
		"/api/v1/billing/create-subscription-checkout",
		"/api/v1/billing/customer-portal",
	} {
		req := httptest.NewRequest("POST", path, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestBillingEndpointsCarryCORSHeaders(t *testing.T) {
	app, token := newBillingTestApp(t, newStubProvider(), newStubRepo())

	req := httptest.NewRequest("POST", "/api/v1/billing/check-subscription", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Origin", "https://app.example.com")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCheckSubscriptionUnsubscribed(t *testing.T) {
	app, token := newBillingTestApp(t, newStubProvider(), newStubRepo())

	req := httptest.NewRequest("POST", "/api/v1/billing/check-subscription", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, false, got["subscribed"])
	assert.NotContains(t, got, "subscription_tier")
	assert.NotContains(t, got, "subscription_id")
}

func TestCheckSubscriptionActive(t *testing.T) {
	provider := newStubProvider()
	repo := newStubRepo()
	repo.profiles[42] = &models.Profile{UserID: 42, StripeCustomerID: "cus_42"}
	end := time.Now().Add(30 * 24 * time.Hour).Truncate(time.Second)
	provider.subsByCustomer["cus_42"] = []billing.Subscription{{
		ID:               "sub_1",
		CustomerID:       "cus_42",
		ProductRef:       "prod_x",
		Status:           "active",
		CurrentPeriodEnd: end,
	}}
	provider.products["prod_x"] = &billing.Product{ID: "prod_x", Name: "Plano Business Anual"}

	app, token := newBillingTestApp(t, provider, repo)

	req := httptest.NewRequest("POST", "/api/v1/billing/check-subscription", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, true, got["subscribed"])
	assert.Equal(t, "business", got["subscription_tier"])
	assert.Equal(t, "sub_1", got["subscription_id"])
	assert.Equal(t, end.UTC().Format(time.RFC3339), got["subscription_end"])
}

func TestCreateSubscriptionCheckoutReturnsURL(t *testing.T) {
	provider := newStubProvider()
	app, token := newBillingTestApp(t, provider, newStubRepo())

	req := httptest.NewRequest("POST", "/api/v1/billing/create-subscription-checkout",
		strings.NewReader(`{"planType":"piercer_monthly"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "https://checkout.example.com/session", got["url"])
	assert.Equal(t, 1, provider.checkoutCalls)
}

func TestCreateSubscriptionCheckoutUnknownPlan(t *testing.T) {
	provider := newStubProvider()
	app, token := newBillingTestApp(t, provider, newStubRepo())

	req := httptest.NewRequest("POST", "/api/v1/billing/create-subscription-checkout",
		strings.NewReader(`{"planType":"gold_plated"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 0, provider.checkoutCalls)
}

func TestCustomerPortalWithoutCustomer(t *testing.T) {
	provider := newStubProvider()
	app, token := newBillingTestApp(t, provider, newStubRepo())

	req := httptest.NewRequest("POST", "/api/v1/billing/customer-portal", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, provider.portalCalls)
}

func TestCustomerPortalWithCustomer(t *testing.T) {
	provider := newStubProvider()
	repo := newStubRepo()
	repo.profiles[42] = &models.Profile{UserID: 42, StripeCustomerID: "cus_42"}

	app, token := newBillingTestApp(t, provider, repo)

	req := httptest.NewRequest("POST", "/api/v1/billing/customer-portal", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var got map[string]string
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "https://portal.example.com/session", got["url"])
	assert.Equal(t, 1, provider.portalCalls)
}
