// Package gormstore persists the catalog and accounts in PostgreSQL through GORM.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/DarshanLevi/shop-it-back/models"
	"github.com/DarshanLevi/shop-it-back/store"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open connects to PostgreSQL and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return New(db)
}

// New wraps an existing connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(
		&models.Product{},
		&models.User{},
		&models.CartItem{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	log.Println("✅ Database schema ready")
	return &Store{db: db}, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Readers are unaffected; concurrent writers queue behind us until commit.
		if err := tx.Exec("LOCK TABLE products IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
			return err
		}

		var maxID int
		if err := tx.Model(&models.Product{}).
			Select("COALESCE(MAX(product_id), 0)").
			Scan(&maxID).Error; err != nil {
			return err
		}

		p.ID = maxID + 1
		return tx.Create(p).Error
	})
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("product_id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) RecentProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).
		Order("date DESC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int) (bool, error) {
	result := s.db.WithContext(ctx).Where("product_id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = uuid.NewString()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}

		items := make([]models.CartItem, 0, len(u.CartData))
		for itemID, qty := range u.CartData {
			items = append(items, models.CartItem{UserID: u.ID, ItemID: itemID, Quantity: qty})
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(items, 100).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrDuplicate
	}
	return err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, "email = ?", email)
}

func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

func (s *Store) findUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	var items []models.CartItem
	if err := db.Where("user_id = ?", user.ID).Find(&items).Error; err != nil {
		return nil, err
	}
	user.CartData = make(models.Cart, len(items))
	for _, item := range items {
		user.CartData[item.ItemID] = item.Quantity
	}
	return &user, nil
}

func (s *Store) AdjustCartItem(ctx context.Context, userID, itemID string, delta int) (int, error) {
	var qty int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return store.ErrNotFound
		}

		initial := delta
		if initial < 0 {
			initial = 0
		}
		item := models.CartItem{UserID: userID, ItemID: itemID, Quantity: initial}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("GREATEST(cart_items.quantity + ?, 0)", delta),
			}),
		}).Create(&item).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ? AND item_id = ?", userID, itemID).First(&item).Error; err != nil {
			return err
		}
		qty = item.Quantity
		return nil
	})
	return qty, err
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
