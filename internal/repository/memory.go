package repository

import (
	"context"
	"fmt"
	"sync"

	"mudia/internal/domain"
)

// seed-администратор: создаётся, когда реестра пользователей ещё нет,
// чтобы в свежем состоянии всегда был вход в админку
var seedAdmin = Credential{
	User: domain.User{
		ID:       "admin-1",
		Name:     "Admin User",
		Email:    "admin@mudia.com",
		Role:     domain.RoleAdmin,
		JoinDate: "2024-01-01",
	},
	Password: "admin123",
}

// MemoryStore объединённый контейнер состояния витрины: каталог, реестр
// пользователей, сессия, корзина и заказы. Каждая мутация зеркалируется
// в Persister (если он задан).
type MemoryStore struct {
	mu       sync.RWMutex
	p        Persister
	products []domain.Product
	prodIdx  map[string]int
	users    []Credential
	session  *domain.User
	cart     []domain.CartItem
	orders   []domain.Order
}

// NewMemoryStore восстанавливает состояние из p (nil — без персистентности)
// и при пустом реестре пользователей добавляет seed-администратора.
func NewMemoryStore(p Persister) (*MemoryStore, error) {
	m := &MemoryStore{p: p, prodIdx: make(map[string]int)}
	if p != nil {
		if _, err := p.Load(KeyUsers, &m.users); err != nil {
			return nil, err
		}
		var u domain.User
		ok, err := p.Load(KeySession, &u)
		if err != nil {
			return nil, err
		}
		if ok {
			m.session = &u
		}
		if _, err := p.Load(KeyCart, &m.cart); err != nil {
			return nil, err
		}
		if _, err := p.Load(KeyOrders, &m.orders); err != nil {
			return nil, err
		}
	}
	if len(m.users) == 0 {
		m.users = []Credential{seedAdmin}
	}
	return m, nil
}

// LoadProducts загружает справочный каталог. Каталог не персистится.
func (m *MemoryStore) LoadProducts(products []domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append([]domain.Product(nil), products...)
	m.prodIdx = make(map[string]int, len(products))
	for i, p := range m.products {
		m.prodIdx[p.ID] = i
	}
}

// SeedOrders заполняет список демо-заказами, если он пуст
func (m *MemoryStore) SeedOrders(orders []domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.orders) == 0 {
		m.orders = append([]domain.Order(nil), orders...)
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

func (m *MemoryStore) persist(key string, v any) error {
	if m.p == nil {
		return nil
	}
	if err := m.p.Save(key, v); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func (m *MemoryStore) unpersist(key string) error {
	if m.p == nil {
		return nil
	}
	if err := m.p.Delete(key); err != nil {
		return fmt.Errorf("unpersist %s: %w", key, err)
	}
	return nil
}

// Ensure interfaces
var _ ProductRepository = (*MemoryStore)(nil)

// ProductRepository implementation (read-only)
func (m *MemoryStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	i, ok := m.prodIdx[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := m.products[i]
	return &cp, nil
}

func (m *MemoryStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0)
	for _, p := range m.products {
		if f.Category != "" && !containsIgnoreCase(p.Category, f.Category) {
			continue
		}
		if f.FeaturedOnly && !p.Featured {
			continue
		}
		if f.Query != "" && !matchesQuery(p, f.Query) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// matchesQuery ищет подстроку в имени, описании, категории и тегах
func matchesQuery(p domain.Product, q string) bool {
	if containsIgnoreCase(p.Name, q) || containsIgnoreCase(p.Description, q) || containsIgnoreCase(p.Category, q) {
		return true
	}
	for _, t := range p.Tags {
		if containsIgnoreCase(t, q) {
			return true
		}
	}
	return false
}

func (m *MemoryStore) Categories(ctx context.Context) ([]string, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, p := range m.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out, nil
}

// UserRepository implementation on wrapper type
type MemoryUsers struct{ store *MemoryStore }

func NewMemoryUsers(store *MemoryStore) *MemoryUsers { return &MemoryUsers{store: store} }

var _ UserRepository = (*MemoryUsers)(nil)

func (r *MemoryUsers) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	for _, c := range r.store.users {
		if c.User.Email == email {
			cp := c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUsers) Create(ctx context.Context, c Credential) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	for _, existing := range r.store.users {
		if existing.User.Email == c.User.Email {
			return ErrExists
		}
	}
	r.store.users = append(r.store.users, c)
	return r.store.persist(KeyUsers, r.store.users)
}

// SessionRepository implementation
type MemorySession struct{ store *MemoryStore }

func NewMemorySession(store *MemoryStore) *MemorySession { return &MemorySession{store: store} }

var _ SessionRepository = (*MemorySession)(nil)

func (r *MemorySession) Current(ctx context.Context) (*domain.User, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	if r.store.session == nil {
		return nil, ErrNotFound
	}
	cp := *r.store.session
	return &cp, nil
}

func (r *MemorySession) Set(ctx context.Context, u domain.User) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	r.store.session = &u
	return r.store.persist(KeySession, u)
}

func (r *MemorySession) Clear(ctx context.Context) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	r.store.session = nil
	return r.store.unpersist(KeySession)
}

// CartRepository implementation
type MemoryCart struct{ store *MemoryStore }

func NewMemoryCart(store *MemoryStore) *MemoryCart { return &MemoryCart{store: store} }

var _ CartRepository = (*MemoryCart)(nil)

func (r *MemoryCart) List(ctx context.Context) ([]domain.CartItem, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	return append([]domain.CartItem(nil), r.store.cart...), nil
}

func (r *MemoryCart) Replace(ctx context.Context, items []domain.CartItem) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	r.store.cart = append([]domain.CartItem{}, items...)
	return r.store.persist(KeyCart, r.store.cart)
}

// OrderRepository implementation
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (r *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	// заказы никогда не удаляются, поэтому count+1 остаётся уникальным
	o.ID = fmt.Sprintf("ORD-%03d", len(r.store.orders)+1)
	r.store.orders = append([]domain.Order{*o}, r.store.orders...)
	return r.store.persist(KeyOrders, r.store.orders)
}

func (r *MemoryOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	for _, o := range r.store.orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryOrders) UpdateStatus(ctx context.Context, id string, st domain.OrderStatus) (*domain.Order, error) {
	r.store.wlock(ctx)
	defer r.store.wunlock(ctx)
	for i := range r.store.orders {
		if r.store.orders[i].ID == id {
			r.store.orders[i].Status = st
			cp := r.store.orders[i]
			if err := r.store.persist(KeyOrders, r.store.orders); err != nil {
				return nil, err
			}
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryOrders) List(ctx context.Context) ([]domain.Order, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	return append([]domain.Order(nil), r.store.orders...), nil
}

func (r *MemoryOrders) Count(ctx context.Context) (int, error) {
	r.store.rlock(ctx)
	defer r.store.runlock(ctx)
	return len(r.store.orders), nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

var _ TxManager = (*MemoryTx)(nil)

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
