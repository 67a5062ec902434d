// Package store defines the persistence gateway the managers depend on.
package store

import (
	"context"
	"errors"

	"github.com/DarshanLevi/shop-it-back/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

type ProductStore interface {
	// CreateProduct assigns p.ID as the highest existing id plus one (1 for
	// an empty catalog) and persists p. Assignment and insert are atomic.
	CreateProduct(ctx context.Context, p *models.Product) error
	ListProducts(ctx context.Context) ([]models.Product, error)
	// RecentProducts returns at most limit products, newest date first.
	RecentProducts(ctx context.Context, limit int) ([]models.Product, error)
	// DeleteProduct removes the product with the given id and reports
	// whether one existed.
	DeleteProduct(ctx context.Context, id int) (bool, error)
}

type UserStore interface {
	// CreateUser sets u.ID and persists u with its cart. Returns
	// ErrDuplicate when the email is taken.
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	// AdjustCartItem atomically adds delta to the quantity of itemID,
	// treating a missing slot as zero and never going below zero. Returns
	// the new quantity, or ErrNotFound if the user does not exist.
	AdjustCartItem(ctx context.Context, userID, itemID string, delta int) (int, error)
}

type Store interface {
	ProductStore
	UserStore
	Close(ctx context.Context) error
}
