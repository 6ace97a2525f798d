package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"mudia/internal/domain"
	"mudia/internal/notify"
	"mudia/internal/repository"
)

var ErrInvalidInput = errors.New("invalid input")

// CartService операции над корзиной. Каждая мутация сохраняет снимок корзины целиком.
type CartService struct {
	cart     repository.CartRepository
	products repository.ProductRepository
	notify   Notifier
}

func NewCartService(cart repository.CartRepository, products repository.ProductRepository, n Notifier) *CartService {
	return &CartService{cart: cart, products: products, notify: n}
}

// AddItem добавляет товар в корзину; повторное добавление того же товара
// суммирует количество в одной позиции
func (s *CartService) AddItem(ctx context.Context, productID string, quantity int) ([]domain.CartItem, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, ErrInvalidInput
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	items, err := s.cart.List(ctx)
	if err != nil {
		return nil, err
	}
	merged := false
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, domain.CartItem{Product: *p, Quantity: quantity})
	}
	if err := s.cart.Replace(ctx, items); err != nil {
		return nil, err
	}
	s.notify.Show(fmt.Sprintf("%s added to cart", p.Name), notify.SeveritySuccess)
	return items, nil
}

// RemoveItem удаляет позицию товара; отсутствующая позиция — no-op
func (s *CartService) RemoveItem(ctx context.Context, productID string) ([]domain.CartItem, error) {
	items, err := s.cart.List(ctx)
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, it := range items {
		if it.Product.ID != productID {
			out = append(out, it)
		}
	}
	if err := s.cart.Replace(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetQuantity перезаписывает количество позиции; quantity <= 0 эквивалентно удалению
func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int) ([]domain.CartItem, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}
	items, err := s.cart.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity = quantity
			break
		}
	}
	if err := s.cart.Replace(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Clear опустошает корзину
func (s *CartService) Clear(ctx context.Context) error {
	return s.cart.Replace(ctx, []domain.CartItem{})
}

// Items возвращает текущие позиции корзины
func (s *CartService) Items(ctx context.Context) ([]domain.CartItem, error) {
	return s.cart.List(ctx)
}

// Total сумма price × quantity по позициям
func (s *CartService) Total(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.cart.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return cartTotal(items), nil
}

// Count сумма количеств по позициям (для бейджа, не для суммы)
func (s *CartService) Count(ctx context.Context) (int, error) {
	items, err := s.cart.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return count, nil
}

func cartTotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
