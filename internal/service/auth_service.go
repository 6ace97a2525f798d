package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mudia/internal/domain"
	"mudia/internal/notify"
	"mudia/internal/repository"
	"mudia/internal/view"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNoSession          = errors.New("no active session")
)

// Notifier канал пользовательских уведомлений об исходе операции
type Notifier interface {
	Show(message string, sev notify.Severity)
}

// Navigator переключение страницы витрины
type Navigator interface {
	GoTo(page view.Page, productID, category string)
}

// AuthService вход, регистрация и завершение сессии.
// Пароли хранятся открытым текстом: это демо без границы безопасности.
type AuthService struct {
	users   repository.UserRepository
	session repository.SessionRepository
	nav     Navigator
	notify  Notifier
	nowFunc func() time.Time
}

func NewAuthService(users repository.UserRepository, session repository.SessionRepository, nav Navigator, n Notifier) *AuthService {
	return &AuthService{
		users:   users,
		session: session,
		nav:     nav,
		notify:  n,
		nowFunc: time.Now,
	}
}

// Authenticate сверяет учётные данные с реестром по точному совпадению.
// Без блокировок и rate limit.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	cred, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.notify.Show("Invalid email or password", notify.SeverityError)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if cred.Password != password {
		s.notify.Show("Invalid email or password", notify.SeverityError)
		return nil, ErrInvalidCredentials
	}
	u := cred.User
	if err := s.session.Set(ctx, u); err != nil {
		return nil, err
	}
	s.notify.Show(fmt.Sprintf("Welcome back, %s!", u.Name), notify.SeveritySuccess)
	return &u, nil
}

// Register создаёт покупателя с уникальной почтой и открывает сессию
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidInput
	}
	now := s.nowFunc()
	u := domain.User{
		ID:       fmt.Sprintf("user-%d", now.UnixMilli()),
		Name:     name,
		Email:    email,
		Role:     domain.RoleCustomer,
		JoinDate: now.Format(domain.DateLayout),
	}
	if err := s.users.Create(ctx, repository.Credential{User: u, Password: password}); err != nil {
		if errors.Is(err, repository.ErrExists) {
			s.notify.Show("Email already registered", notify.SeverityError)
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	if err := s.session.Set(ctx, u); err != nil {
		return nil, err
	}
	s.notify.Show(fmt.Sprintf("Welcome to Mudia Stores, %s!", name), notify.SeveritySuccess)
	return &u, nil
}

// EndSession закрывает сессию и возвращает навигацию на главную
func (s *AuthService) EndSession(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return err
	}
	s.nav.GoTo(view.PageHome, "", "")
	s.notify.Show("Logged out successfully", notify.SeverityInfo)
	return nil
}

// CurrentUser возвращает пользователя активной сессии
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.User, error) {
	u, err := s.session.Current(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoSession
	}
	return u, err
}
