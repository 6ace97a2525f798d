// Package notify реализует однослотовый канал пользовательских уведомлений
// с автоочисткой по таймеру.
package notify

import (
	"sync"
	"time"
)

// Severity категория уведомления; влияет только на отображение
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification сообщение с категорией
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// DefaultTTL время жизни уведомления по умолчанию
const DefaultTTL = 3 * time.Second

// Center единственный слот уведомления. Новое уведомление вытесняет
// текущее и перезапускает таймер автоочистки.
type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Notification
	timer   *time.Timer
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl}
}

// Show заменяет текущее уведомление. Прежний таймер останавливается,
// чтобы он не стёр новое сообщение раньше времени.
func (c *Center) Show(message string, sev Severity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	n := &Notification{Message: message, Severity: sev}
	c.current = n
	c.timer = time.AfterFunc(c.ttl, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.current == n {
			c.current = nil
		}
	})
}

// Current возвращает текущее уведомление или nil
func (c *Center) Current() *Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	cp := *c.current
	return &cp
}

// Clear немедленно очищает слот
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.current = nil
}
