package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DarshanLevi/shop-it-back/models"
	"github.com/DarshanLevi/shop-it-back/store"
)

func TestCreateProductAssignsNextID(t *testing.T) {
	ctx := context.Background()
	s := New()

	for want := 1; want <= 3; want++ {
		p := &models.Product{Name: "p"}
		if err := s.CreateProduct(ctx, p); err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
		if p.ID != want {
			t.Fatalf("id = %d, want %d", p.ID, want)
		}
	}

	// Deleting the highest id frees it for the next product.
	if ok, _ := s.DeleteProduct(ctx, 3); !ok {
		t.Fatal("expected product 3 to be deleted")
	}
	p := &models.Product{Name: "again"}
	_ = s.CreateProduct(ctx, p)
	if p.ID != 3 {
		t.Fatalf("id after delete = %d, want 3", p.ID)
	}
}

func TestCreateProductConcurrentIDsUnique(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.CreateProduct(ctx, &models.Product{Name: "p"})
		}()
	}
	wg.Wait()

	seen := map[int]bool{}
	all, _ := s.ListProducts(ctx)
	for _, p := range all {
		if seen[p.ID] {
			t.Fatalf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
	}
	if len(seen) != 50 {
		t.Fatalf("got %d products, want 50", len(seen))
	}
}

func TestRecentProductsOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_ = s.CreateProduct(ctx, &models.Product{Name: "p", Date: base.Add(time.Duration(i) * time.Hour)})
	}

	got, _ := s.RecentProducts(ctx, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []int{5, 4, 3} {
		if got[i].ID != want {
			t.Errorf("got[%d].ID = %d, want %d", i, got[i].ID, want)
		}
	}
}

func TestDeleteMissingProduct(t *testing.T) {
	s := New()
	ok, err := s.DeleteProduct(context.Background(), 42)
	if err != nil || ok {
		t.Fatalf("DeleteProduct = %v, %v; want false, nil", ok, err)
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := New()

	u := &models.User{Name: "Ann", Email: "ann@example.com", Password: "hash", CartData: models.NewCart()}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected an id to be assigned")
	}
	if err := s.CreateUser(ctx, &models.User{Email: "ann@example.com"}); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("duplicate CreateUser err = %v", err)
	}

	got, err := s.UserByEmail(ctx, "ann@example.com")
	if err != nil || got.ID != u.ID {
		t.Fatalf("UserByEmail = %+v, %v", got, err)
	}
	if _, err := s.UserByEmail(ctx, "bob@example.com"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing email err = %v", err)
	}

	// Returned users are copies.
	got.CartData["1"] = 99
	again, _ := s.UserByID(ctx, u.ID)
	if again.CartData["1"] != 0 {
		t.Fatal("caller mutation leaked into the store")
	}
}

func TestAdjustCartItem(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := &models.User{Email: "c@example.com", CartData: models.NewCart()}
	_ = s.CreateUser(ctx, u)

	if qty, _ := s.AdjustCartItem(ctx, u.ID, "5", 1); qty != 1 {
		t.Fatalf("qty = %d, want 1", qty)
	}
	if qty, _ := s.AdjustCartItem(ctx, u.ID, "999", 1); qty != 1 {
		t.Fatalf("missing slot qty = %d, want 1", qty)
	}
	if qty, _ := s.AdjustCartItem(ctx, u.ID, "7", -1); qty != 0 {
		t.Fatalf("floored qty = %d, want 0", qty)
	}
	if _, err := s.AdjustCartItem(ctx, "nobody", "1", 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("unknown user err = %v", err)
	}
}
