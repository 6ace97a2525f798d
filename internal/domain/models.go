package domain

import "github.com/shopspring/decimal"

// DateLayout формат дат витрины (только дата, без времени)
const DateLayout = "2006-01-02"

// Role роль пользователя
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Product товар каталога. Справочные данные, витрина их не создаёт и не меняет.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Image         string           `json:"image"`
	Category      string           `json:"category"`
	Rating        float64          `json:"rating"`
	Reviews       int              `json:"reviews"`
	InStock       bool             `json:"in_stock"`
	Featured      bool             `json:"featured,omitempty"`
	Tags          []string         `json:"tags"`
}

// CartItem позиция корзины: снимок товара и количество.
// В корзине не бывает двух позиций с одним product id.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// User публичная запись пользователя. Пароль хранится рядом, но вне этой структуры.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	JoinDate string `json:"join_date"`
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidStatus проверяет, входит ли статус в закрытый набор
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ShippingAddress адрес доставки
type ShippingAddress struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

// Order заказ. После создания неизменяем, кроме статуса.
// Items — замороженный снимок корзины на момент оформления.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	UserName        string          `json:"user_name"`
	Items           []CartItem      `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	Date            string          `json:"date"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
}
