package validation

// LoginRequest тело POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest тело POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AddCartItemRequest тело POST /cart/items; quantity 0 трактуется как 1
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// UpdateCartItemRequest тело PUT /cart/items/:id; quantity <= 0 удаляет позицию
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// ShippingAddress адрес доставки в CheckoutRequest
type ShippingAddress struct {
	FullName string `json:"full_name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	Zip      string `json:"zip" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

// CheckoutRequest тело POST /orders
type CheckoutRequest struct {
	ShippingAddress ShippingAddress `json:"shipping_address" validate:"required"`
	PaymentMethod   string          `json:"payment_method" validate:"required"`
}

// UpdateStatusRequest тело PATCH /orders/:id/status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

// NavigateRequest тело POST /view/navigate
type NavigateRequest struct {
	Page      string `json:"page" validate:"required,oneof=home product cart checkout auth admin orders category"`
	ProductID string `json:"product_id"`
	Category  string `json:"category"`
}

// SearchRequest тело PUT /view/search
type SearchRequest struct {
	Query string `json:"query"`
}
