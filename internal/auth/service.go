// Package auth проверяет пароли, выдаёт токены сессии и превращает входящий
// токен в Context.
//
// После выдачи токен с таблицей users не сверяется: пользователь, которого
// разжаловали или удалили, сохраняет права из токена до его истечения.
// Окно ограничено auth.token_ttl.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ipmanager/internal/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore: поиск учётки по логину. Нет пользователя, значит (nil, nil).
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Context: кто делает запрос. Нулевое значение означает анонима (только чтение).
type Context struct {
	UserID  uint
	IsAdmin bool
}

type Session struct {
	Token   string
	IsAdmin bool
}

type Service struct {
	users  UserStore
	hasher *Hasher
	tokens *TokenManager

	// dummyHash: с ним сравниваем пароль, когда логин не найден
	dummyHash string
}

func NewService(users UserStore, hasher *Hasher, tokens *TokenManager) (*Service, error) {
	dummy, err := hasher.Hash([]byte("ipmanager-dummy-password"))
	if err != nil {
		return nil, fmt.Errorf("auth: dummy hash: %w", err)
	}
	return &Service{users: users, hasher: hasher, tokens: tokens, dummyHash: dummy}, nil
}

// Authenticate проверяет логин/пароль и выдаёт токен.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if u == nil {
		_ = s.hasher.Compare(s.dummyHash, []byte(password))
		return nil, ErrUserNotFound
	}
	if err := s.hasher.Compare(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	tok, _, err := s.tokens.Issue(u.ID, u.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &Session{Token: tok, IsAdmin: u.IsAdmin}, nil
}

// Authorize разбирает заголовок Authorization. Любая проблема с токеном
// даёт анонимный Context, не ошибку.
func (s *Service) Authorize(header string) Context {
	tok := strings.TrimSpace(header)
	if len(tok) > 7 && strings.EqualFold(tok[:7], "bearer ") {
		tok = strings.TrimSpace(tok[7:])
	}
	if tok == "" {
		return Context{}
	}
	claims, err := s.tokens.Parse(tok)
	if err != nil {
		return Context{}
	}
	return Context{UserID: claims.UserID, IsAdmin: claims.IsAdmin}
}

type ctxKey struct{}

func WithContext(ctx context.Context, c Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext: Context из WithContext либо аноним.
func FromContext(ctx context.Context) Context {
	c, _ := ctx.Value(ctxKey{}).(Context)
	return c
}
