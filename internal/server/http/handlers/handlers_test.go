package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tulamia/orderdesk/internal/domain/model"
	"github.com/tulamia/orderdesk/internal/server/http/dto"
	testhelpers "github.com/tulamia/orderdesk/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type client struct {
	t       *testing.T
	engine  *gin.Engine
	session *http.Cookie
}

func newStoreClient(t *testing.T, facade StorefrontFacade) *client {
	t.Helper()
	engine := gin.New()
	store := NewStoreHandler(facade)
	payment := NewPaymentHandler(facade)

	engine.GET("/api/menu", store.Menu)
	engine.GET("/api/orders", store.Orders)
	engine.GET("/api/cart", store.Cart)
	engine.POST("/api/cart/items", store.AddItem)
	engine.PUT("/api/cart/items/:id", store.UpdateItem)
	engine.DELETE("/api/cart/items/:id", store.RemoveItem)
	engine.DELETE("/api/cart", store.ClearCart)
	engine.POST("/api/checkout", store.Checkout)
	engine.GET("/api/paypal/availability", payment.Availability)
	engine.POST("/api/paypal/capture", payment.Capture)

	return &client{t: t, engine: engine}
}

func (c *client) do(method, path string, payload any) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			c.t.Fatal(err)
		}
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.session != nil {
		req.AddCookie(c.session)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			c.session = cookie
		}
	}
	return w
}

func decodeTo[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, w.Body.String())
	}
	return out
}

func storefront() StorefrontFacade {
	return testhelpers.NewStorefrontFacade(testhelpers.StorefrontOptions{
		Snapshot: testhelpers.SnapshotStub{CatalogItems: testhelpers.SampleCatalog()},
	})
}

func TestMenuEndpoint(t *testing.T) {
	c := newStoreClient(t, storefront())

	w := c.do(http.MethodGet, "/api/menu", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	menu := decodeTo[[]dto.MenuItemResponse](t, w)
	if len(menu) != 2 || menu[0].ID != "bruschetta" {
		t.Fatalf("unexpected menu %+v", menu)
	}
}

func TestCartLifecycle(t *testing.T) {
	c := newStoreClient(t, storefront())

	w := c.do(http.MethodPost, "/api/cart/items", dto.AddItemRequest{ID: "bruschetta"})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if c.session == nil {
		t.Fatal("expected session cookie")
	}

	cart := decodeTo[dto.CartResponse](t, w)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Fatalf("unexpected cart %+v", cart)
	}

	w = c.do(http.MethodPut, "/api/cart/items/bruschetta", dto.UpdateItemRequest{Quantity: 3})
	cart = decodeTo[dto.CartResponse](t, w)
	if cart.Items[0].Quantity != 3 {
		t.Fatalf("unexpected quantity %d", cart.Items[0].Quantity)
	}
	if cart.Totals.Subtotal != 19.50 {
		t.Fatalf("unexpected subtotal %v", cart.Totals.Subtotal)
	}

	w = c.do(http.MethodPut, "/api/cart/items/bruschetta", dto.UpdateItemRequest{Quantity: 0})
	cart = decodeTo[dto.CartResponse](t, w)
	if len(cart.Items) != 0 {
		t.Fatalf("zero quantity must remove the line, got %+v", cart.Items)
	}

	c.do(http.MethodPost, "/api/cart/items", dto.AddItemRequest{ID: "tagliatelle"})
	w = c.do(http.MethodDelete, "/api/cart", nil)
	cart = decodeTo[dto.CartResponse](t, w)
	if len(cart.Items) != 0 {
		t.Fatal("expected cleared cart")
	}
}

func TestAddItemRequiresID(t *testing.T) {
	c := newStoreClient(t, storefront())

	w := c.do(http.MethodPost, "/api/cart/items", dto.AddItemRequest{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", w.Code)
	}
}

func TestCheckoutEndpoint(t *testing.T) {
	c := newStoreClient(t, storefront())

	c.do(http.MethodPost, "/api/cart/items", dto.AddItemRequest{ID: "bruschetta"})
	c.do(http.MethodPost, "/api/cart/items", dto.AddItemRequest{ID: "tagliatelle"})

	w := c.do(http.MethodPost, "/api/checkout", dto.CheckoutRequest{
		Customer: dto.CustomerPayload{Name: "Mara", Email: "mara@example.com", Fulfillment: "pickup"},
		Provider: "cash",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	order := decodeTo[model.Order](t, w)
	if order.ID == "" || order.Totals.Total != 12.40 {
		t.Fatalf("unexpected order %+v", order)
	}

	// The cart is cleared after a successful submission.
	w = c.do(http.MethodGet, "/api/cart", nil)
	cart := decodeTo[dto.CartResponse](t, w)
	if len(cart.Items) != 0 {
		t.Fatal("expected cleared cart after checkout")
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	c := newStoreClient(t, storefront())

	w := c.do(http.MethodPost, "/api/checkout", dto.CheckoutRequest{
		Customer: dto.CustomerPayload{Name: "Mara", Email: "mara@example.com"},
		Provider: "cash",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", w.Code)
	}
}

func TestCheckoutRejectsPayPalProvider(t *testing.T) {
	c := newStoreClient(t, storefront())

	c.do(http.MethodPost, "/api/cart/items", dto.AddItemRequest{ID: "bruschetta"})
	w := c.do(http.MethodPost, "/api/checkout", dto.CheckoutRequest{
		Customer: dto.CustomerPayload{Name: "Mara", Email: "mara@example.com"},
		Provider: "paypal",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", w.Code)
	}
}

func TestPayPalAvailability(t *testing.T) {
	c := newStoreClient(t, storefront())

	w := c.do(http.MethodGet, "/api/paypal/availability", nil)
	availability := decodeTo[dto.AvailabilityResponse](t, w)
	if availability.Available {
		t.Fatal("expected paypal path to be unavailable without credentials")
	}
	if len(availability.Missing) != 2 {
		t.Fatalf("unexpected missing preconditions %v", availability.Missing)
	}
}

func paypalStorefront(repo *testhelpers.OrderRepositoryStub, pp *testhelpers.PayPalClientStub) StorefrontFacade {
	return testhelpers.NewStorefrontFacade(testhelpers.StorefrontOptions{
		Catalog: &testhelpers.CatalogRepositoryStub{Items: testhelpers.SampleCatalog()},
		Orders:  repo,
		PayPal:  pp,
	})
}

func TestCaptureEndpoint(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	pp := &testhelpers.PayPalClientStub{Result: &model.CaptureResult{Status: model.CaptureStatusCompleted, Details: json.RawMessage(`{"id":"PP-7"}`)}}
	c := newStoreClient(t, paypalStorefront(repo, pp))

	c.do(http.MethodPost, "/api/cart/items", dto.AddItemRequest{ID: "bruschetta"})
	w := c.do(http.MethodPost, "/api/paypal/capture", dto.CaptureRequest{
		PayPalOrderID: "PP-7",
		Customer:      dto.CustomerPayload{Name: "Mara", Email: "mara@example.com", Fulfillment: "pickup"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	resp := decodeTo[dto.CaptureResponse](t, w)
	if resp.OrderID == "" || resp.Status != model.CaptureStatusCompleted {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.PayPalOrderID != "PP-7" {
		t.Fatalf("unexpected provider order id %q", resp.PayPalOrderID)
	}
	if len(repo.Orders) != 1 {
		t.Fatalf("expected one recorded order, got %d", len(repo.Orders))
	}
	if repo.Orders[0].Payment.Status != model.PaymentPaid {
		t.Fatalf("unexpected status %q", repo.Orders[0].Payment.Status)
	}

	w = c.do(http.MethodGet, "/api/cart", nil)
	cart := decodeTo[dto.CartResponse](t, w)
	if len(cart.Items) != 0 {
		t.Fatal("expected cleared cart after capture")
	}
}

func TestCaptureValidation(t *testing.T) {
	c := newStoreClient(t, paypalStorefront(&testhelpers.OrderRepositoryStub{}, &testhelpers.PayPalClientStub{}))

	w := c.do(http.MethodPost, "/api/paypal/capture", dto.CaptureRequest{
		Customer: dto.CustomerPayload{Name: "Mara"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing paypalOrderId: unexpected status %d", w.Code)
	}

	w = c.do(http.MethodPost, "/api/paypal/capture", dto.CaptureRequest{PayPalOrderID: "PP-7"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing customer name: unexpected status %d", w.Code)
	}

	// Empty cart: validated server-side against the session.
	w = c.do(http.MethodPost, "/api/paypal/capture", dto.CaptureRequest{
		PayPalOrderID: "PP-7",
		Customer:      dto.CustomerPayload{Name: "Mara", Email: "mara@example.com"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty cart: unexpected status %d", w.Code)
	}
}

func TestCaptureDeclined(t *testing.T) {
	repo := &testhelpers.OrderRepositoryStub{}
	pp := &testhelpers.PayPalClientStub{Result: &model.CaptureResult{Status: "DECLINED"}}
	c := newStoreClient(t, paypalStorefront(repo, pp))

	c.do(http.MethodPost, "/api/cart/items", dto.AddItemRequest{ID: "bruschetta"})
	w := c.do(http.MethodPost, "/api/paypal/capture", dto.CaptureRequest{
		PayPalOrderID: "PP-7",
		Customer:      dto.CustomerPayload{Name: "Mara", Email: "mara@example.com"},
	})
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if len(repo.Orders) != 0 {
		t.Fatal("no order may exist without a completed capture")
	}
}

func TestCaptureUnavailable(t *testing.T) {
	c := newStoreClient(t, storefront())

	c.do(http.MethodPost, "/api/cart/items", dto.AddItemRequest{ID: "bruschetta"})
	w := c.do(http.MethodPost, "/api/paypal/capture", dto.CaptureRequest{
		PayPalOrderID: "PP-7",
		Customer:      dto.CustomerPayload{Name: "Mara", Email: "mara@example.com"},
	})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status %d", w.Code)
	}
}

func TestAdminLogin(t *testing.T) {
	facade := storefront()
	engine := gin.New()
	admin := NewAdminHandler(facade)
	engine.POST("/api/admin/login", admin.Login)

	body, _ := json.Marshal(dto.AuthRequest{Login: "admin", Password: "swordfish"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	resp := decodeTo[dto.AuthResponse](t, w)
	if resp.Token == "" {
		t.Fatal("expected issued token")
	}
	if !facade.Verify(resp.Token).Admin {
		t.Fatal("issued token must grant admin")
	}

	body, _ = json.Marshal(dto.AuthRequest{Login: "admin", Password: "wrong"})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", w.Code)
	}
}
