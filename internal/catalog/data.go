// Package catalog содержит статические справочные данные витрины:
// каталог товаров и демо-заказы. Витрина их не изменяет.
package catalog

import (
	"github.com/shopspring/decimal"

	"mudia/internal/domain"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func pricePtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// Products возвращает каталог товаров
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:            "p-1",
			Name:          "Wireless Noise-Cancelling Headphones",
			Description:   "Over-ear headphones with adaptive noise cancelling and 30-hour battery life.",
			Price:         price("129.99"),
			OriginalPrice: pricePtr("199.99"),
			Image:         "/images/p-1.jpg",
			Category:      "electronics",
			Rating:        4.7,
			Reviews:       1284,
			InStock:       true,
			Featured:      true,
			Tags:          []string{"audio", "wireless", "travel"},
		},
		{
			ID:          "p-2",
			Name:        "Smart Watch Series 8",
			Description: "Fitness tracking, heart-rate monitor and always-on display.",
			Price:       price("299.99"),
			Image:       "/images/p-2.jpg",
			Category:    "electronics",
			Rating:      4.5,
			Reviews:     863,
			InStock:     true,
			Featured:    true,
			Tags:        []string{"wearable", "fitness"},
		},
		{
			ID:          "p-3",
			Name:        "Minimalist Leather Backpack",
			Description: "Full-grain leather backpack with padded 15-inch laptop sleeve.",
			Price:       price("89.99"),
			Image:       "/images/p-3.jpg",
			Category:    "fashion",
			Rating:      4.6,
			Reviews:     402,
			InStock:     true,
			Tags:        []string{"bag", "leather", "commute"},
		},
		{
			ID:          "p-4",
			Name:        "Organic Cotton T-Shirt",
			Description: "Soft everyday tee made from 100% organic cotton.",
			Price:       price("24.99"),
			Image:       "/images/p-4.jpg",
			Category:    "fashion",
			Rating:      4.3,
			Reviews:     1975,
			InStock:     true,
			Tags:        []string{"basics", "organic"},
		},
		{
			ID:          "p-5",
			Name:        "Ceramic Pour-Over Coffee Set",
			Description: "Hand-glazed dripper, server and two cups for slow mornings.",
			Price:       price("54.99"),
			Image:       "/images/p-5.jpg",
			Category:    "home",
			Rating:      4.8,
			Reviews:     311,
			InStock:     true,
			Featured:    true,
			Tags:        []string{"coffee", "kitchen", "gift"},
		},
		{
			ID:          "p-6",
			Name:        "Scandinavian Table Lamp",
			Description: "Oak base, linen shade, warm dimmable light.",
			Price:       price("79.99"),
			Image:       "/images/p-6.jpg",
			Category:    "home",
			Rating:      4.4,
			Reviews:     158,
			InStock:     true,
			Tags:        []string{"lighting", "decor"},
		},
		{
			ID:          "p-7",
			Name:        "Yoga Mat Pro",
			Description: "6mm non-slip mat with alignment guides and carry strap.",
			Price:       price("44.99"),
			Image:       "/images/p-7.jpg",
			Category:    "sports",
			Rating:      4.5,
			Reviews:     720,
			InStock:     true,
			Tags:        []string{"yoga", "fitness"},
		},
		{
			ID:            "p-8",
			Name:          "Ultralight Running Shoes",
			Description:   "Breathable knit upper and responsive foam midsole.",
			Price:         price("119.99"),
			OriginalPrice: pricePtr("149.99"),
			Image:         "/images/p-8.jpg",
			Category:      "sports",
			Rating:        4.6,
			Reviews:       945,
			InStock:       true,
			Featured:      true,
			Tags:          []string{"running", "shoes"},
		},
		{
			ID:          "p-9",
			Name:        "Vitamin C Face Serum",
			Description: "Brightening serum with 15% vitamin C and hyaluronic acid.",
			Price:       price("32.99"),
			Image:       "/images/p-9.jpg",
			Category:    "beauty",
			Rating:      4.2,
			Reviews:     534,
			InStock:     true,
			Tags:        []string{"skincare", "serum"},
		},
		{
			ID:          "p-10",
			Name:        "Bluetooth Speaker Mini",
			Description: "Pocket-size speaker with surprisingly big sound, IPX7 waterproof.",
			Price:       price("59.99"),
			Image:       "/images/p-10.jpg",
			Category:    "electronics",
			Rating:      4.1,
			Reviews:     267,
			InStock:     false,
			Tags:        []string{"audio", "portable", "outdoor"},
		},
	}
}

// SampleOrders возвращает демо-заказы для пустого состояния.
// Итоги согласованы с позициями; id продолжают нумерацию ORD-%03d.
func SampleOrders() []domain.Order {
	products := Products()
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	addr := domain.ShippingAddress{
		FullName: "Sarah Mitchell",
		Address:  "742 Willow Lane",
		City:     "Portland",
		State:    "OR",
		Zip:      "97205",
		Country:  "USA",
	}
	return []domain.Order{
		{
			ID:       "ORD-002",
			UserID:   "user-demo-1",
			UserName: "Sarah Mitchell",
			Items: []domain.CartItem{
				{Product: byID["p-5"], Quantity: 1},
			},
			Total:           price("54.99"),
			Status:          domain.OrderStatusProcessing,
			Date:            "2024-12-18",
			ShippingAddress: addr,
			PaymentMethod:   "Card ending in 4242",
		},
		{
			ID:       "ORD-001",
			UserID:   "user-demo-1",
			UserName: "Sarah Mitchell",
			Items: []domain.CartItem{
				{Product: byID["p-1"], Quantity: 1},
				{Product: byID["p-4"], Quantity: 2},
			},
			Total:           price("179.97"),
			Status:          domain.OrderStatusDelivered,
			Date:            "2024-11-02",
			ShippingAddress: addr,
			PaymentMethod:   "Card ending in 4242",
		},
	}
}
