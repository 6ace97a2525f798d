package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"mudia/internal/domain"
	"mudia/internal/notify"
	"mudia/internal/repository"
	"mudia/internal/service"
	"mudia/internal/view"
)

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Desk Lamp", Description: "Warm light", Category: "home", Price: decimal.RequireFromString("10.00"), InStock: true, Featured: true, Tags: []string{"light"}},
		{ID: "p2", Name: "Mug", Description: "Ceramic mug", Category: "home", Price: decimal.RequireFromString("5.00"), InStock: true},
		{ID: "p3", Name: "Yoga Mat", Description: "Non-slip", Category: "sports", Price: decimal.RequireFromString("20.00"), InStock: true, Tags: []string{"fitness"}},
	}
}

func setupServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := repository.NewMemoryStore(nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	store.LoadProducts(testProducts())

	users := repository.NewMemoryUsers(store)
	session := repository.NewMemorySession(store)
	cartRepo := repository.NewMemoryCart(store)
	ordersRepo := repository.NewMemoryOrders(store)
	tx := repository.NewMemoryTx(store)

	notices := notify.NewCenter(notify.DefaultTTL)
	nav := view.NewState()

	auth := service.NewAuthService(users, session, nav, notices)
	cart := service.NewCartService(cartRepo, store, notices)
	orders := service.NewOrderService(service.OrderServiceConfig{
		Orders:   ordersRepo,
		Cart:     cartRepo,
		Session:  session,
		Products: store,
		Tx:       tx,
		Notifier: notices,
	})
	catalog := service.NewCatalogService(store)

	return NewServer(ServerConfig{
		Auth:          auth,
		Cart:          cart,
		Orders:        orders,
		Catalog:       catalog,
		Notifications: notices,
		View:          nav,
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func login(t *testing.T, s *Server, email, password string) {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/v1/auth/login", gin.H{"email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
}

func TestAuthFlow(t *testing.T) {
	s := setupServer(t)

	// no session yet
	w := doJSON(t, s, http.MethodGet, "/api/v1/auth/session", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/auth/register", gin.H{"name": "Jane", "email": "jane@x.com", "password": "secret1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	var u domain.User
	decode(t, w, &u)
	if u.Role != domain.RoleCustomer {
		t.Fatalf("expected customer, got %s", u.Role)
	}

	// duplicate email conflicts
	w = doJSON(t, s, http.MethodPost, "/api/v1/auth/register", gin.H{"name": "Jane2", "email": "jane@x.com", "password": "secret2"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/auth/session", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("session: %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/auth/logout", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout: %d", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/auth/session", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("session should be gone, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "jane@x.com", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", w.Code)
	}
	login(t, s, "jane@x.com", "secret1")
}

func TestRegisterValidation(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", gin.H{"name": "Jane", "email": "not-an-email", "password": "secret1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	decode(t, w, &resp)
	if resp.Error != "validation_failed" || resp.Fields["RegisterRequest.Email"] != "email" {
		t.Fatalf("unexpected error body: %+v", resp)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/auth/register", gin.H{"name": "Jane", "email": "jane@x.com", "password": "12345"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("short password should fail, got %d", w.Code)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("products: %d", w.Code)
	}
	var list []domain.Product
	decode(t, w, &list)
	if len(list) != 3 {
		t.Fatalf("expected 3 products, got %d", len(list))
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/products?category=home&featured=true", nil)
	decode(t, w, &list)
	if len(list) != 1 || list[0].ID != "p1" {
		t.Fatalf("filter failed: %+v", list)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/products?q=fitness", nil)
	decode(t, w, &list)
	if len(list) != 1 || list[0].ID != "p3" {
		t.Fatalf("tag search failed: %+v", list)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/products/p2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get product: %d", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/products/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/categories", nil)
	var cats []string
	decode(t, w, &cats)
	if len(cats) != 2 {
		t.Fatalf("categories: %v", cats)
	}
}

func TestCartAndCheckoutFlow(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", gin.H{"name": "Jane", "email": "jane@x.com", "password": "secret1"})
	if w.Code != http.StatusCreated {
		t.Fatal(w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "p1", "quantity": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("add item: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, s, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "p2"})
	if w.Code != http.StatusOK {
		t.Fatalf("add item: %d %s", w.Code, w.Body.String())
	}

	var cart struct {
		Items []domain.CartItem `json:"items"`
		Total string            `json:"total"`
		Count int               `json:"count"`
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/cart", nil)
	decode(t, w, &cart)
	if cart.Count != 3 || cart.Total != "25" {
		t.Fatalf("cart totals wrong: %+v", cart)
	}

	// unknown product is 404
	w = doJSON(t, s, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "nope"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	// quantity 0 on PUT removes the line
	w = doJSON(t, s, http.MethodPut, "/api/v1/cart/items/p2", gin.H{"quantity": 0})
	decode(t, w, &cart)
	if len(cart.Items) != 1 {
		t.Fatalf("zero quantity should remove the line: %+v", cart)
	}

	body := gin.H{
		"shipping_address": gin.H{
			"full_name": "Jane Doe", "address": "1 Main St", "city": "Lagos",
			"state": "LA", "zip": "100001", "country": "NG",
		},
		"payment_method": "card",
	}
	w = doJSON(t, s, http.MethodPost, "/api/v1/orders", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout: %d %s", w.Code, w.Body.String())
	}
	var o domain.Order
	decode(t, w, &o)
	if o.ID != "ORD-001" || o.Status != domain.OrderStatusPending {
		t.Fatalf("unexpected order: %+v", o)
	}

	// checkout navigates to the orders page
	var snap view.Snapshot
	w = doJSON(t, s, http.MethodGet, "/api/v1/view", nil)
	decode(t, w, &snap)
	if snap.Page != view.PageOrders {
		t.Fatalf("expected orders page after checkout, got %s", snap.Page)
	}

	// cart is now empty, second checkout conflicts
	w = doJSON(t, s, http.MethodGet, "/api/v1/cart", nil)
	decode(t, w, &cart)
	if cart.Count != 0 {
		t.Fatalf("cart should be empty: %+v", cart)
	}
	w = doJSON(t, s, http.MethodPost, "/api/v1/orders", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on empty cart, got %d %s", w.Code, w.Body.String())
	}
}

func TestCheckoutRequiresSession(t *testing.T) {
	s := setupServer(t)

	body := gin.H{
		"shipping_address": gin.H{
			"full_name": "Jane Doe", "address": "1 Main St", "city": "Lagos",
			"state": "LA", "zip": "100001", "country": "NG",
		},
		"payment_method": "card",
	}
	w := doJSON(t, s, http.MethodPost, "/api/v1/orders", body)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d %s", w.Code, w.Body.String())
	}
}

func TestOrderStatusRBAC(t *testing.T) {
	s := setupServer(t)

	// customer places an order
	w := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", gin.H{"name": "Jane", "email": "jane@x.com", "password": "secret1"})
	if w.Code != http.StatusCreated {
		t.Fatal(w.Body.String())
	}
	if w = doJSON(t, s, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "p1"}); w.Code != http.StatusOK {
		t.Fatal(w.Body.String())
	}
	body := gin.H{
		"shipping_address": gin.H{
			"full_name": "Jane Doe", "address": "1 Main St", "city": "Lagos",
			"state": "LA", "zip": "100001", "country": "NG",
		},
		"payment_method": "card",
	}
	if w = doJSON(t, s, http.MethodPost, "/api/v1/orders", body); w.Code != http.StatusCreated {
		t.Fatal(w.Body.String())
	}

	// customer cannot change status
	w = doJSON(t, s, http.MethodPatch, "/api/v1/orders/ORD-001/status", gin.H{"status": "shipped"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d %s", w.Code, w.Body.String())
	}

	login(t, s, "admin@mudia.com", "admin123")

	// invalid status fails validation before the service is reached
	w = doJSON(t, s, http.MethodPatch, "/api/v1/orders/ORD-001/status", gin.H{"status": "teleported"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	w = doJSON(t, s, http.MethodPatch, "/api/v1/orders/ORD-999/status", gin.H{"status": "shipped"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPatch, "/api/v1/orders/ORD-001/status", gin.H{"status": "shipped"})
	if w.Code != http.StatusOK {
		t.Fatalf("admin update: %d %s", w.Code, w.Body.String())
	}
	var o domain.Order
	decode(t, w, &o)
	if o.Status != domain.OrderStatusShipped {
		t.Fatalf("status not updated: %+v", o)
	}
}

func TestAdminStatsEndpoint(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/admin/stats", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/auth/register", gin.H{"name": "Jane", "email": "jane@x.com", "password": "secret1"})
	if w.Code != http.StatusCreated {
		t.Fatal(w.Body.String())
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/admin/stats", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", w.Code)
	}

	login(t, s, "admin@mudia.com", "admin123")
	w = doJSON(t, s, http.MethodGet, "/api/v1/admin/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: %d %s", w.Code, w.Body.String())
	}
	var stats service.OrderStats
	decode(t, w, &stats)
	if stats.ProductCount != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestNotificationEndpoint(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/notification", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 when empty, got %d", w.Code)
	}

	login(t, s, "admin@mudia.com", "admin123")
	w = doJSON(t, s, http.MethodGet, "/api/v1/notification", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected notification after login, got %d", w.Code)
	}
	var n notify.Notification
	decode(t, w, &n)
	if n.Message != "Welcome back, Admin User!" || n.Severity != notify.SeveritySuccess {
		t.Fatalf("unexpected notification: %+v", n)
	}
}

func TestViewEndpoints(t *testing.T) {
	s := setupServer(t)

	var snap view.Snapshot
	w := doJSON(t, s, http.MethodGet, "/api/v1/view", nil)
	decode(t, w, &snap)
	if snap.Page != view.PageHome {
		t.Fatalf("expected home, got %s", snap.Page)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/view/navigate", gin.H{"page": "product", "product_id": "p1"})
	if w.Code != http.StatusOK {
		t.Fatalf("navigate: %d %s", w.Code, w.Body.String())
	}
	decode(t, w, &snap)
	if snap.Page != view.PageProduct || snap.ProductID != "p1" {
		t.Fatalf("navigation state wrong: %+v", snap)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/view/navigate", gin.H{"page": "settings"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown page should fail, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPut, "/api/v1/view/search", gin.H{"query": "lamp"})
	decode(t, w, &snap)
	if snap.SearchQuery != "lamp" {
		t.Fatalf("search query not set: %+v", snap)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/products", nil)
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatal("request id not set")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-Id") != "fixed-id" {
		t.Fatalf("client id not preserved: %q", rec.Header().Get("X-Request-Id"))
	}
}

func TestListOrders(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/orders", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/auth/register", gin.H{"name": "Jane", "email": "jane@x.com", "password": "secret1"})
	if w.Code != http.StatusCreated {
		t.Fatal(w.Body.String())
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/orders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("orders: %d", w.Code)
	}
	var list []domain.Order
	decode(t, w, &list)
	if len(list) != 0 {
		t.Fatalf("new customer should have no orders: %+v", list)
	}
}
