package gormstore

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/DarshanLevi/shop-it-back/models"
	"github.com/DarshanLevi/shop-it-back/store"
	"github.com/google/uuid"
)

// openTestStore connects to TEST_DATABASE_URL and empties the tables. The
// tests share one database, so none of them run in parallel.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.db.Exec("TRUNCATE products, cart_items, users").Error; err != nil {
		t.Fatalf("truncate: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestCreateProductSequentialIDs(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	for want := 1; want <= 2; want++ {
		p := &models.Product{Name: "p", Category: "men", NewPrice: 10, Available: true}
		if err := s.CreateProduct(ctx, p); err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
		if p.ID != want {
			t.Fatalf("id = %d, want %d", p.ID, want)
		}
	}
}

func TestCreateProductConcurrentIDsUnique(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.CreateProduct(ctx, &models.Product{Name: "p"})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
	}

	all, err := s.ListProducts(ctx)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(all) != n {
		t.Fatalf("got %d products, want %d", len(all), n)
	}
	for i, p := range all {
		if p.ID != i+1 {
			t.Fatalf("ids not contiguous: position %d has id %d", i, p.ID)
		}
	}
}

func TestAdjustCartItem(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	u := &models.User{Name: "Ann", Email: "ann@example.com", Password: "x", CartData: models.NewCart()}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	var qty int
	var err error
	for i := 0; i < 3; i++ {
		if qty, err = s.AdjustCartItem(ctx, u.ID, "5", 1); err != nil {
			t.Fatalf("AdjustCartItem(+1): %v", err)
		}
	}
	if qty != 3 {
		t.Fatalf("after 3 adds qty = %d, want 3", qty)
	}

	for i := 0; i < 5; i++ {
		if qty, err = s.AdjustCartItem(ctx, u.ID, "5", -1); err != nil {
			t.Fatalf("AdjustCartItem(-1): %v", err)
		}
	}
	if qty != 0 {
		t.Fatalf("after 5 removes qty = %d, want 0", qty)
	}

	got, err := s.UserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if got.CartData["5"] != 0 || len(got.CartData) != models.CartSize {
		t.Fatalf("cart[5] = %d with %d slots", got.CartData["5"], len(got.CartData))
	}
}

func TestAdjustCartItemConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	u := &models.User{Name: "Ann", Email: "ann@example.com", Password: "x", CartData: models.NewCart()}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.AdjustCartItem(ctx, u.ID, "7", 1); err != nil {
				t.Errorf("AdjustCartItem: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := s.UserByID(ctx, u.ID)
	if got.CartData["7"] != n {
		t.Fatalf("cart[7] = %d, want %d", got.CartData["7"], n)
	}
}

func TestAdjustCartItemUnknownUser(t *testing.T) {
	s := openTestStore(t)
	for _, delta := range []int{1, -1} {
		if _, err := s.AdjustCartItem(context.Background(), uuid.NewString(), "5", delta); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("AdjustCartItem(%+d) err = %v, want ErrNotFound", delta, err)
		}
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.CreateUser(ctx, &models.User{Name: "A", Email: "a@b.c", CartData: models.NewCart()}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	err := s.CreateUser(ctx, &models.User{Name: "B", Email: "a@b.c", CartData: models.NewCart()})
	if !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("second CreateUser err = %v, want ErrDuplicate", err)
	}
}
