// Package view хранит состояние клиентской навигации: активная страница,
// выбранный товар или категория и поисковый запрос. Без истории и guard-ов.
package view

import "sync"

// Page логическая страница витрины
type Page string

const (
	PageHome     Page = "home"
	PageProduct  Page = "product"
	PageCart     Page = "cart"
	PageCheckout Page = "checkout"
	PageAuth     Page = "auth"
	PageAdmin    Page = "admin"
	PageOrders   Page = "orders"
	PageCategory Page = "category"
)

// ValidPage проверяет, входит ли страница в закрытый набор
func ValidPage(p Page) bool {
	switch p {
	case PageHome, PageProduct, PageCart, PageCheckout,
		PageAuth, PageAdmin, PageOrders, PageCategory:
		return true
	}
	return false
}

// Snapshot снимок состояния навигации
type Snapshot struct {
	Page        Page   `json:"page"`
	ProductID   string `json:"product_id,omitempty"`
	Category    string `json:"category,omitempty"`
	SearchQuery string `json:"search_query,omitempty"`
}

// State потокобезопасное состояние навигации
type State struct {
	mu          sync.RWMutex
	page        Page
	productID   string
	category    string
	searchQuery string
}

func NewState() *State {
	return &State{page: PageHome}
}

// GoTo переключает страницу; выбор товара и категории задаётся заново при каждом вызове
func (s *State) GoTo(page Page, productID, category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
	s.productID = productID
	s.category = category
}

// SetSearchQuery задаёт поисковый запрос
func (s *State) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = q
}

// Snapshot возвращает копию текущего состояния
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Page:        s.page,
		ProductID:   s.productID,
		Category:    s.category,
		SearchQuery: s.searchQuery,
	}
}
