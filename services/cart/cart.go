// Package cart maintains per-user item counters.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DarshanLevi/shop-it-back/models"
	"github.com/DarshanLevi/shop-it-back/store"
)

const maxItemIDLen = 64

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidItem  = errors.New("invalid item id")
)

type Manager struct {
	users store.UserStore
}

func NewManager(users store.UserStore) *Manager {
	return &Manager{users: users}
}

// Add increments the quantity of itemID. Items are not checked against the
// catalog.
func (m *Manager) Add(ctx context.Context, userID, itemID string) (int, error) {
	return m.adjust(ctx, userID, itemID, 1)
}

// Remove decrements the quantity of itemID, stopping at zero.
func (m *Manager) Remove(ctx context.Context, userID, itemID string) (int, error) {
	return m.adjust(ctx, userID, itemID, -1)
}

func (m *Manager) Get(ctx context.Context, userID string) (models.Cart, error) {
	user, err := m.users.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user.CartData, nil
}

func (m *Manager) adjust(ctx context.Context, userID, itemID string, delta int) (int, error) {
	if err := validateItemID(itemID); err != nil {
		return 0, err
	}
	qty, err := m.users.AdjustCartItem(ctx, userID, itemID, delta)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("update cart: %w", err)
	}
	return qty, nil
}

// Item ids become document field names in some stores.
func validateItemID(id string) error {
	if id == "" || len(id) > maxItemIDLen || strings.ContainsAny(id, ".$ \t\n") {
		return ErrInvalidItem
	}
	return nil
}
