// Package catalog manages the products offered for sale.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/DarshanLevi/shop-it-back/models"
	"github.com/DarshanLevi/shop-it-back/store"
)

// RecentLimit caps the new-collections listing.
const RecentLimit = 8

var ErrInvalidProduct = errors.New("invalid product")

// ProductInput carries the client-supplied product fields. Pointers tell
// "absent" apart from a zero value.
type ProductInput struct {
	Name      string     `json:"name"`
	Image     string     `json:"image"`
	Category  string     `json:"category"`
	NewPrice  *float64   `json:"new_price"`
	OldPrice  *float64   `json:"old_price"`
	Date      *time.Time `json:"date"`
	Available *bool      `json:"available"`
}

func (in ProductInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Image) == "" {
		missing = append(missing, "image")
	}
	if strings.TrimSpace(in.Category) == "" {
		missing = append(missing, "category")
	}
	if in.NewPrice == nil {
		missing = append(missing, "new_price")
	}
	if in.OldPrice == nil {
		missing = append(missing, "old_price")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrInvalidProduct, strings.Join(missing, ", "))
	}
	if *in.NewPrice < 0 || *in.OldPrice < 0 {
		return fmt.Errorf("%w: prices must not be negative", ErrInvalidProduct)
	}
	return nil
}

type Manager struct {
	products store.ProductStore
	events   *Broker
	now      func() time.Time
}

func NewManager(products store.ProductStore) *Manager {
	return &Manager{products: products, events: NewBroker(), now: time.Now}
}

func (m *Manager) Events() *Broker {
	return m.events
}

// Add stores a new product under the next free catalog id.
func (m *Manager) Add(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := in.Validate(); err != nil {
		return models.Product{}, err
	}

	p := models.Product{
		Name:      strings.TrimSpace(in.Name),
		Image:     strings.TrimSpace(in.Image),
		Category:  strings.TrimSpace(in.Category),
		NewPrice:  *in.NewPrice,
		OldPrice:  *in.OldPrice,
		Date:      m.now(),
		Available: true,
	}
	if in.Date != nil && !in.Date.IsZero() {
		p.Date = *in.Date
	}
	if in.Available != nil {
		p.Available = *in.Available
	}

	if err := m.products.CreateProduct(ctx, &p); err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}
	m.events.Publish(Event{Type: EventAdded, Product: p})
	return p, nil
}

func (m *Manager) List(ctx context.Context) ([]models.Product, error) {
	products, err := m.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// ListRecent returns the newest products. limit is clamped to 1..RecentLimit.
func (m *Manager) ListRecent(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 || limit > RecentLimit {
		limit = RecentLimit
	}
	products, err := m.products.RecentProducts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent products: %w", err)
	}
	return products, nil
}

// Remove deletes the product with the given id. A missing id is not an error.
func (m *Manager) Remove(ctx context.Context, id int) (bool, error) {
	removed, err := m.products.DeleteProduct(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", id, err)
	}
	if removed {
		m.events.Publish(Event{Type: EventRemoved, Product: models.Product{ID: id}})
	}
	return removed, nil
}
