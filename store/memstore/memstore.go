// Package memstore is a process-local Store, used for development and tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/DarshanLevi/shop-it-back/models"
	"github.com/DarshanLevi/shop-it-back/store"
	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	products []models.Product
	users    map[string]*models.User
	byEmail  map[string]string
	nextKey  uint
}

func New() *Store {
	return &Store{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

var _ store.Store = (*Store)(nil)

func (s *Store) CreateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID := 0
	for _, existing := range s.products {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	s.nextKey++
	p.Key = s.nextKey
	p.ID = maxID + 1
	s.products = append(s.products, *p)
	return nil
}

func (s *Store) ListProducts(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) RecentProducts(ctx context.Context, limit int) ([]models.Product, error) {
	out, _ := s.ListProducts(ctx)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) DeleteProduct(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := u.Email
	if _, taken := s.byEmail[email]; taken {
		return store.ErrDuplicate
	}
	u.ID = uuid.NewString()
	stored := *u
	stored.CartData = cloneCart(u.CartData)
	s.users[u.ID] = &stored
	s.byEmail[email] = u.ID
	return nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[email]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	return s.UserByID(ctx, id)
}

func (s *Store) UserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *u
	out.CartData = cloneCart(u.CartData)
	return &out, nil
}

func (s *Store) AdjustCartItem(_ context.Context, userID, itemID string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return 0, store.ErrNotFound
	}
	if u.CartData == nil {
		u.CartData = models.Cart{}
	}
	qty := u.CartData[itemID] + delta
	if qty < 0 {
		qty = 0
	}
	u.CartData[itemID] = qty
	return qty, nil
}

func (s *Store) Close(context.Context) error { return nil }

func cloneCart(c models.Cart) models.Cart {
	out := make(models.Cart, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
