// Package account handles registration and credential login.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DarshanLevi/shop-it-back/auth"
	"github.com/DarshanLevi/shop-it-back/models"
	"github.com/DarshanLevi/shop-it-back/store"
)

var (
	ErrDuplicateAccount   = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("username, email and password are required")
)

type TokenIssuer interface {
	Issue(userID string) (string, error)
}

type Manager struct {
	users  store.UserStore
	tokens TokenIssuer
	now    func() time.Time
}

func NewManager(users store.UserStore, tokens TokenIssuer) *Manager {
	return &Manager{users: users, tokens: tokens, now: time.Now}
}

// Signup registers a new account with an empty cart and returns a session
// token for it.
func (m *Manager) Signup(ctx context.Context, name, email, password string) (string, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return "", ErrMissingFields
	}

	_, err := m.users.UserByEmail(ctx, email)
	switch {
	case err == nil:
		return "", ErrDuplicateAccount
	case !errors.Is(err, store.ErrNotFound):
		return "", fmt.Errorf("lookup user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		CartData: models.NewCart(),
		Date:     m.now(),
	}
	if err := m.users.CreateUser(ctx, user); err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, store.ErrDuplicate) {
			return "", ErrDuplicateAccount
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	return m.tokens.Issue(user.ID)
}

func (m *Manager) Login(ctx context.Context, email, password string) (string, error) {
	user, err := m.users.UserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if err := auth.CheckPassword(user.Password, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return m.tokens.Issue(user.ID)
}
