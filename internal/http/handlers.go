package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"mudia/internal/domain"
	"mudia/internal/notify"
	"mudia/internal/repository"
	"mudia/internal/service"
	"mudia/internal/validation"
	"mudia/internal/view"
)

// ServerConfig зависимости HTTP-сервера
type ServerConfig struct {
	Auth          *service.AuthService
	Cart          *service.CartService
	Orders        *service.OrderService
	Catalog       *service.CatalogService
	Notifications *notify.Center
	View          *view.State
}

type Server struct {
	engine   *gin.Engine
	auth     *service.AuthService
	cart     *service.CartService
	orders   *service.OrderService
	catalog  *service.CatalogService
	notices  *notify.Center
	view     *view.State
	validate *validatorv10.Validate
}

func NewServer(cfg ServerConfig) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), requestID())
	s := &Server{
		engine:   r,
		auth:     cfg.Auth,
		cart:     cfg.Cart,
		orders:   cfg.Orders,
		catalog:  cfg.Catalog,
		notices:  cfg.Notifications,
		view:     cfg.View,
		validate: validation.New(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

// requestID проставляет X-Request-Id, если клиент его не прислал
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/login", s.login)
		auth.POST("/register", s.register)
		auth.POST("/logout", s.logout)
		auth.GET("/session", s.session)

		v1.GET("/products", s.listProducts)
		v1.GET("/products/:id", s.getProduct)
		v1.GET("/categories", s.listCategories)

		cart := v1.Group("/cart")
		cart.GET("", s.getCart)
		cart.POST("/items", s.addCartItem)
		cart.PUT("/items/:id", s.updateCartItem)
		cart.DELETE("/items/:id", s.removeCartItem)
		cart.DELETE("", s.clearCart)

		orders := v1.Group("/orders")
		orders.GET("", s.listOrders)
		orders.POST("", s.checkout)
		orders.PATCH(":id/status", s.updateOrderStatus)

		v1.GET("/admin/stats", s.adminStats)

		v1.GET("/notification", s.getNotification)

		viewGroup := v1.Group("/view")
		viewGroup.GET("", s.getView)
		viewGroup.POST("/navigate", s.navigate)
		viewGroup.PUT("/search", s.setSearch)
	}
}

// Auth handlers

// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param input body validation.LoginRequest true "Credentials"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req validation.LoginRequest
	if err := validation.BindAndValidate(c, &req, s.validate); err != nil {
		return
	}
	u, err := s.auth.Authenticate(c, req.Email, req.Password)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Register a new customer
// @Tags auth
// @Accept json
// @Produce json
// @Param input body validation.RegisterRequest true "New account"
// @Success 201 {object} domain.User
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (s *Server) register(c *gin.Context) {
	var req validation.RegisterRequest
	if err := validation.BindAndValidate(c, &req, s.validate); err != nil {
		return
	}
	u, err := s.auth.Register(c, req.Name, req.Email, req.Password)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

// @Summary Sign out
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (s *Server) logout(c *gin.Context) {
	if err := s.auth.EndSession(c); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Current session user
// @Tags auth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Router /auth/session [get]
func (s *Server) session(c *gin.Context) {
	u, err := s.auth.CurrentUser(c)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}

// Catalog handlers

// @Summary List products
// @Tags catalog
// @Produce json
// @Param q query string false "Search in name, description, category and tags"
// @Param category query string false "Category"
// @Param featured query bool false "Featured only"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	f := repository.ProductFilter{
		Query:        c.Query("q"),
		Category:     c.Query("category"),
		FeaturedOnly: c.Query("featured") == "true",
	}
	list, err := s.catalog.List(c, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get product by id
// @Tags catalog
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.catalog.GetByID(c, c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {array} string
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	list, err := s.catalog.Categories(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Cart handlers

// cartView корзина с производными итогами
type cartView struct {
	Items []domain.CartItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

func newCartView(items []domain.CartItem) cartView {
	total := decimal.Zero
	count := 0
	for _, it := range items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		count += it.Quantity
	}
	return cartView{Items: items, Total: total, Count: count}
}

// @Summary Get cart with totals
// @Tags cart
// @Produce json
// @Success 200 {object} cartView
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	items, err := s.cart.Items(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newCartView(items))
}

// @Summary Add product to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param input body validation.AddCartItemRequest true "Item"
// @Success 200 {object} cartView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items [post]
func (s *Server) addCartItem(c *gin.Context) {
	var req validation.AddCartItemRequest
	if err := validation.BindAndValidate(c, &req, s.validate); err != nil {
		return
	}
	items, err := s.cart.AddItem(c, req.ProductID, req.Quantity)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newCartView(items))
}

// @Summary Set cart line quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body validation.UpdateCartItemRequest true "Quantity; <= 0 removes the line"
// @Success 200 {object} cartView
// @Failure 400 {object} map[string]string
// @Router /cart/items/{id} [put]
func (s *Server) updateCartItem(c *gin.Context) {
	var req validation.UpdateCartItemRequest
	if err := validation.BindAndValidate(c, &req, s.validate); err != nil {
		return
	}
	items, err := s.cart.SetQuantity(c, c.Param("id"), req.Quantity)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newCartView(items))
}

// @Summary Remove cart line
// @Tags cart
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} cartView
// @Router /cart/items/{id} [delete]
func (s *Server) removeCartItem(c *gin.Context) {
	items, err := s.cart.RemoveItem(c, c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newCartView(items))
}

// @Summary Clear cart
// @Tags cart
// @Success 204
// @Router /cart [delete]
func (s *Server) clearCart(c *gin.Context) {
	if err := s.cart.Clear(c); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Order handlers

// @Summary List orders of the session user (admin sees all)
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Failure 401 {object} map[string]string
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	actor, err := s.auth.CurrentUser(c)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	list, err := s.orders.ListFor(c, actor)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Place order from the current cart
// @Tags orders
// @Accept json
// @Produce json
// @Param input body validation.CheckoutRequest true "Shipping and payment"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders [post]
func (s *Server) checkout(c *gin.Context) {
	var req validation.CheckoutRequest
	if err := validation.BindAndValidate(c, &req, s.validate); err != nil {
		return
	}
	addr := domain.ShippingAddress{
		FullName: req.ShippingAddress.FullName,
		Address:  req.ShippingAddress.Address,
		City:     req.ShippingAddress.City,
		State:    req.ShippingAddress.State,
		Zip:      req.ShippingAddress.Zip,
		Country:  req.ShippingAddress.Country,
	}
	o, err := s.orders.PlaceOrder(c, addr, req.PaymentMethod)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	s.view.GoTo(view.PageOrders, "", "")
	c.JSON(http.StatusCreated, o)
}

// @Summary Set order status (admin only)
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body validation.UpdateStatusRequest true "New status"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/status [patch]
func (s *Server) updateOrderStatus(c *gin.Context) {
	var req validation.UpdateStatusRequest
	if err := validation.BindAndValidate(c, &req, s.validate); err != nil {
		return
	}
	actor, err := s.auth.CurrentUser(c)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	o, err := s.orders.SetStatus(c, actor, c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Admin dashboard aggregates
// @Tags admin
// @Produce json
// @Success 200 {object} service.OrderStats
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/stats [get]
func (s *Server) adminStats(c *gin.Context) {
	actor, err := s.auth.CurrentUser(c)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	stats, err := s.orders.Stats(c, actor)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Notification handler

// @Summary Current notification, if any
// @Tags notification
// @Produce json
// @Success 200 {object} notify.Notification
// @Success 204
// @Router /notification [get]
func (s *Server) getNotification(c *gin.Context) {
	n := s.notices.Current()
	if n == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, n)
}

// View handlers

// @Summary Current navigation state
// @Tags view
// @Produce json
// @Success 200 {object} view.Snapshot
// @Router /view [get]
func (s *Server) getView(c *gin.Context) {
	c.JSON(http.StatusOK, s.view.Snapshot())
}

// @Summary Navigate to a page
// @Tags view
// @Accept json
// @Produce json
// @Param input body validation.NavigateRequest true "Target page"
// @Success 200 {object} view.Snapshot
// @Failure 400 {object} map[string]string
// @Router /view/navigate [post]
func (s *Server) navigate(c *gin.Context) {
	var req validation.NavigateRequest
	if err := validation.BindAndValidate(c, &req, s.validate); err != nil {
		return
	}
	s.view.GoTo(view.Page(req.Page), req.ProductID, req.Category)
	c.JSON(http.StatusOK, s.view.Snapshot())
}

// @Summary Set search query
// @Tags view
// @Accept json
// @Produce json
// @Param input body validation.SearchRequest true "Query"
// @Success 200 {object} view.Snapshot
// @Router /view/search [put]
func (s *Server) setSearch(c *gin.Context) {
	var req validation.SearchRequest
	if err := validation.BindAndValidate(c, &req, s.validate); err != nil {
		return
	}
	s.view.SetSearchQuery(req.Query)
	c.JSON(http.StatusOK, s.view.Snapshot())
}

func mapErrorToStatus(err error) int {
	switch err {
	case service.ErrInvalidInput, service.ErrInvalidStatus:
		return http.StatusBadRequest
	case service.ErrInvalidCredentials, service.ErrNoSession:
		return http.StatusUnauthorized
	case service.ErrForbidden:
		return http.StatusForbidden
	case repository.ErrNotFound:
		return http.StatusNotFound
	case service.ErrEmailTaken, service.ErrEmptyCart:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
