package repository

import (
	"context"
	"errors"
	"strings"

	"mudia/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ErrExists возвращается при попытке создать дубликат
var ErrExists = errors.New("already exists")

// Ключи снимков состояния в локальном хранилище
const (
	KeyUsers   = "users"
	KeySession = "session"
	KeyCart    = "cart"
	KeyOrders  = "orders"
)

// Persister локальное key/value хранилище снимков состояния в JSON
type Persister interface {
	Save(key string, v any) error
	Load(key string, v any) (bool, error)
	Delete(key string) error
}

// ProductFilter параметры фильтрации каталога
type ProductFilter struct {
	Query        string // подстрока по имени, описанию, категории и тегам
	Category     string
	FeaturedOnly bool
}

// ProductRepository каталог товаров, только чтение
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// Credential учётная запись: публичный пользователь плюс пароль
type Credential struct {
	User     domain.User `json:"user"`
	Password string      `json:"password"`
}

// UserRepository реестр зарегистрированных пользователей
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*Credential, error)
	Create(ctx context.Context, c Credential) error
}

// SessionRepository единственный активный пользователь сессии
type SessionRepository interface {
	Current(ctx context.Context) (*domain.User, error)
	Set(ctx context.Context, u domain.User) error
	Clear(ctx context.Context) error
}

// CartRepository текущая корзина как упорядоченный список позиций
type CartRepository interface {
	List(ctx context.Context) ([]domain.CartItem, error)
	Replace(ctx context.Context, items []domain.CartItem) error
}

// OrderRepository список заказов, новые в начале
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, st domain.OrderStatus) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Count(ctx context.Context) (int, error)
}

// TxManager абстракция транзакции. Для in-memory — глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
