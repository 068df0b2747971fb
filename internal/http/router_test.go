package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SunnieP/analytics-training-demo/internal/analytics"
	"github.com/SunnieP/analytics-training-demo/internal/cart"
	"github.com/SunnieP/analytics-training-demo/internal/catalog"
	"github.com/SunnieP/analytics-training-demo/internal/checkout"
	"github.com/SunnieP/analytics-training-demo/internal/orders"
	"github.com/SunnieP/analytics-training-demo/internal/repository"
)

type nopSink struct{}

func (nopSink) ProductViewed(context.Context, analytics.ProductViewed)               {}
func (nopSink) ItemAdded(context.Context, analytics.ItemAdded)                       {}
func (nopSink) CheckoutStarted(context.Context, analytics.CheckoutStarted)           {}
func (nopSink) ShippingInfoAdded(context.Context, analytics.ShippingInfoAdded)       {}
func (nopSink) PaymentInfoAdded(context.Context, analytics.PaymentInfoAdded)         {}
func (nopSink) PurchaseCompleted(context.Context, analytics.PurchaseCompleted)       {}
func (nopSink) NewsletterSignup(context.Context, analytics.NewsletterSignup)         {}
func (nopSink) ContactFormSubmitted(context.Context, analytics.ContactFormSubmitted) {}
func (nopSink) OutboundLinkClicked(context.Context, analytics.OutboundLinkClicked)   {}
func (nopSink) FileDownloaded(context.Context, analytics.FileDownloaded)             {}
func (nopSink) CTAClicked(context.Context, analytics.CTAClicked)                     {}
func (nopSink) ScrollDepthReached(context.Context, analytics.ScrollDepthReached)     {}
func (nopSink) ScenarioCompleted(context.Context, analytics.ScenarioCompleted)       {}

// newTestServer wires the full surface over in-memory backends. The client
// carries the session cookie like a browser would.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	sink := nopSink{}
	cartSvc := cart.NewService(repository.NewMemoryRepository(), nil, sink)
	txns := orders.NewMemoryRepository()

	router := NewRouter(RouterDeps{
		Catalog:        catalog.NewStaticCatalog(),
		Cart:           cartSvc,
		Checkout:       checkout.NewManager(cartSvc, txns, sink),
		Orders:         txns,
		Sink:           sink,
		RequestTimeout: 5 * time.Second,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return server, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestAddItem_ResolvesProductFromCatalog(t *testing.T) {
	server, client := newTestServer(t)

	resp := postJSON(t, client, server.URL+"/api/cart/items", AddItemRequestDTO{ProductID: "prod_001", Quantity: 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	view := decodeBody[CartViewDTO](t, resp)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "GA4 Fundamentals Course", view.Items[0].ItemName)
	assert.InDelta(t, 99.00, view.Items[0].Price, 1e-9)
	assert.Equal(t, 2, view.ItemCount)
	assert.InDelta(t, 198.00, view.Subtotal, 1e-9)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	server, client := newTestServer(t)

	resp := postJSON(t, client, server.URL+"/api/cart/items", AddItemRequestDTO{ProductID: "prod_999", Quantity: 1})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetCart_ScopedToSession(t *testing.T) {
	server, client := newTestServer(t)

	resp := postJSON(t, client, server.URL+"/api/cart/items", AddItemRequestDTO{ProductID: "prod_002", Quantity: 1})
	resp.Body.Close()

	// Same client (same cookie) sees the item
	resp, err := client.Get(server.URL + "/api/cart")
	require.NoError(t, err)
	view := decodeBody[CartViewDTO](t, resp)
	assert.Equal(t, 1, view.ItemCount)

	// A different client gets its own empty cart
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	other := &http.Client{Jar: jar}
	resp, err = other.Get(server.URL + "/api/cart")
	require.NoError(t, err)
	otherView := decodeBody[CartViewDTO](t, resp)
	assert.Zero(t, otherView.ItemCount)
}

func TestBuyNow_ReplacesCart(t *testing.T) {
	server, client := newTestServer(t)

	postJSON(t, client, server.URL+"/api/cart/items", AddItemRequestDTO{ProductID: "prod_001", Quantity: 3}).Body.Close()
	resp := postJSON(t, client, server.URL+"/api/cart/buy-now", AddItemRequestDTO{ProductID: "prod_006", Quantity: 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	view := decodeBody[CartViewDTO](t, resp)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "prod_006", view.Items[0].ItemID)
	assert.Equal(t, 1, view.ItemCount)
}

func TestBeginCheckout_EmptyCart(t *testing.T) {
	server, client := newTestServer(t)

	resp := postJSON(t, client, server.URL+"/api/checkout", struct{}{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCheckoutFlow_EndToEnd(t *testing.T) {
	server, client := newTestServer(t)

	// Build the worked-example cart
	postJSON(t, client, server.URL+"/api/cart/items", AddItemRequestDTO{ProductID: "prod_001", Quantity: 1}).Body.Close()
	postJSON(t, client, server.URL+"/api/cart/items", AddItemRequestDTO{ProductID: "prod_002", Quantity: 2}).Body.Close()

	resp := postJSON(t, client, server.URL+"/api/checkout", struct{}{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decodeBody[CheckoutViewDTO](t, resp)
	assert.Equal(t, "SHIPPING", view.CurrentStep)

	resp = postJSON(t, client, server.URL+"/api/checkout/shipping", SetShippingRequestDTO{Method: "Express"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = decodeBody[CheckoutViewDTO](t, resp)
	assert.Equal(t, "PAYMENT", view.CurrentStep)
	assert.InDelta(t, 10.00, view.Totals.Shipping, 1e-9)

	resp = postJSON(t, client, server.URL+"/api/checkout/purchase", PurchaseRequestDTO{
		PaymentMethod: "credit_card",
		PromoCode:     "analytics20",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	txn := decodeBody[TransactionDTO](t, resp)

	assert.InDelta(t, 197.00, txn.Totals.Subtotal, 1e-9)
	assert.InDelta(t, 39.40, txn.Totals.Discount, 1e-9)
	assert.InDelta(t, 7.88, txn.Totals.Tax, 1e-9)
	assert.InDelta(t, 175.48, txn.Totals.Total, 1e-9)
	assert.Equal(t, "ANALYTICS20", txn.Coupon)

	// Confirmation lookup
	resp, err := client.Get(server.URL + "/api/orders/" + txn.TransactionID)
	require.NoError(t, err)
	archived := decodeBody[TransactionDTO](t, resp)
	assert.Equal(t, txn.TransactionID, archived.TransactionID)

	// Cart is gone after the purchase
	resp, err = client.Get(server.URL + "/api/cart")
	require.NoError(t, err)
	cartView := decodeBody[CartViewDTO](t, resp)
	assert.Zero(t, cartView.ItemCount)
}

func TestPurchase_DuplicateSubmit(t *testing.T) {
	server, client := newTestServer(t)

	postJSON(t, client, server.URL+"/api/cart/items", AddItemRequestDTO{ProductID: "prod_003", Quantity: 1}).Body.Close()
	postJSON(t, client, server.URL+"/api/checkout", struct{}{}).Body.Close()
	postJSON(t, client, server.URL+"/api/checkout/shipping", SetShippingRequestDTO{Method: "Standard"}).Body.Close()

	resp := postJSON(t, client, server.URL+"/api/checkout/purchase", PurchaseRequestDTO{PaymentMethod: "paypal"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, server.URL+"/api/checkout/purchase", PurchaseRequestDTO{PaymentMethod: "paypal"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSetShipping_UnknownMethod(t *testing.T) {
	server, client := newTestServer(t)

	postJSON(t, client, server.URL+"/api/cart/items", AddItemRequestDTO{ProductID: "prod_004", Quantity: 1}).Body.Close()
	postJSON(t, client, server.URL+"/api/checkout", struct{}{}).Body.Close()

	resp := postJSON(t, client, server.URL+"/api/checkout/shipping", SetShippingRequestDTO{Method: "Teleport"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetProduct_Found(t *testing.T) {
	server, client := newTestServer(t)

	resp, err := client.Get(server.URL + "/api/products/prod_002")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestGetOrder_Missing(t *testing.T) {
	server, client := newTestServer(t)

	resp, err := client.Get(server.URL + "/api/orders/TRN-missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
