package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mudia/internal/domain"
	"mudia/internal/notify"
	"mudia/internal/repository"
)

var (
	ErrForbidden     = errors.New("forbidden")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidStatus = errors.New("invalid order status")
)

// OrderServiceConfig зависимости сервиса заказов
type OrderServiceConfig struct {
	Orders   repository.OrderRepository
	Cart     repository.CartRepository
	Session  repository.SessionRepository
	Products repository.ProductRepository
	Tx       repository.TxManager
	Notifier Notifier
	// ProcessingDelay имитация обработки платежа перед записью заказа;
	// запущенную задержку отменить нельзя
	ProcessingDelay time.Duration
}

// OrderService оформление заказов, статусы и агрегаты для админ-панели
type OrderService struct {
	orders   repository.OrderRepository
	cart     repository.CartRepository
	session  repository.SessionRepository
	products repository.ProductRepository
	tx       repository.TxManager
	notify   Notifier
	delay    time.Duration
	nowFunc  func() time.Time
	sleep    func(time.Duration)
}

func NewOrderService(cfg OrderServiceConfig) *OrderService {
	return &OrderService{
		orders:   cfg.Orders,
		cart:     cfg.Cart,
		session:  cfg.Session,
		products: cfg.Products,
		tx:       cfg.Tx,
		notify:   cfg.Notifier,
		delay:    cfg.ProcessingDelay,
		nowFunc:  time.Now,
		sleep:    time.Sleep,
	}
}

// PlaceOrder превращает текущую корзину в неизменяемый заказ: замораживает
// снимок позиций и итог, ставит статус pending, добавляет заказ в начало
// списка и очищает корзину — атомарно относительно других мутаций.
func (s *OrderService) PlaceOrder(ctx context.Context, addr domain.ShippingAddress, paymentMethod string) (*domain.Order, error) {
	user, err := s.session.Current(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if paymentMethod == "" {
		return nil, ErrInvalidInput
	}

	if s.delay > 0 {
		s.sleep(s.delay)
	}

	var created *domain.Order
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		items, err := s.cart.List(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}
		o := domain.Order{
			UserID:          user.ID,
			UserName:        user.Name,
			Items:           items,
			Total:           cartTotal(items),
			Status:          domain.OrderStatusPending,
			Date:            s.nowFunc().Format(domain.DateLayout),
			ShippingAddress: addr,
			PaymentMethod:   paymentMethod,
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		if err := s.cart.Replace(ctx, []domain.CartItem{}); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notify.Show("Order placed successfully!", notify.SeveritySuccess)
	return created, nil
}

// SetStatus перезаписывает статус заказа. Доступно только администратору —
// проверка здесь, на границе менеджера состояния, а не в слое отображения.
// Легальность перехода между статусами намеренно не проверяется.
func (s *OrderService) SetStatus(ctx context.Context, actor *domain.User, orderID string, st domain.OrderStatus) (*domain.Order, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if !domain.ValidStatus(st) {
		return nil, ErrInvalidStatus
	}
	o, err := s.orders.UpdateStatus(ctx, orderID, st)
	if err != nil {
		return nil, err
	}
	s.notify.Show(fmt.Sprintf("Order %s updated to %s", orderID, st), notify.SeveritySuccess)
	return o, nil
}

// ListFor админ видит все заказы, покупатель — только свои
func (s *OrderService) ListFor(ctx context.Context, actor *domain.User) ([]domain.Order, error) {
	if actor == nil {
		return nil, ErrNoSession
	}
	all, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleAdmin {
		return all, nil
	}
	own := make([]domain.Order, 0)
	for _, o := range all {
		if o.UserID == actor.ID {
			own = append(own, o)
		}
	}
	return own, nil
}

// OrderStats агрегаты админ-панели
type OrderStats struct {
	TotalRevenue    decimal.Decimal            `json:"total_revenue"`
	TotalOrders     int                        `json:"total_orders"`
	PendingOrders   int                        `json:"pending_orders"`
	StatusCounts    map[domain.OrderStatus]int `json:"status_counts"`
	CategoryRevenue map[string]decimal.Decimal `json:"category_revenue"`
	ProductCount    int                        `json:"product_count"`
}

// Stats считает выручку и распределение заказов; только для администратора
func (s *OrderService) Stats(ctx context.Context, actor *domain.User) (*OrderStats, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	stats := &OrderStats{
		TotalRevenue:    decimal.Zero,
		TotalOrders:     len(orders),
		StatusCounts:    make(map[domain.OrderStatus]int),
		CategoryRevenue: make(map[string]decimal.Decimal),
		ProductCount:    len(products),
	}
	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		stats.StatusCounts[o.Status]++
		if o.Status == domain.OrderStatusPending {
			stats.PendingOrders++
		}
		for _, it := range o.Items {
			line := it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			cat := it.Product.Category
			stats.CategoryRevenue[cat] = stats.CategoryRevenue[cat].Add(line)
		}
	}
	return stats, nil
}
