package account

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DarshanLevi/shop-it-back/auth"
	"github.com/DarshanLevi/shop-it-back/models"
	"github.com/DarshanLevi/shop-it-back/store/memstore"
)

func newManager() (*Manager, *memstore.Store, *auth.TokenService) {
	users := memstore.New()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewManager(users, tokens), users, tokens
}

func TestSignupInitializesCart(t *testing.T) {
	ctx := context.Background()
	m, users, tokens := newManager()

	token, err := m.Signup(ctx, "Ann", "ann@example.com", "pw")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	identity, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	user, err := users.UserByID(ctx, identity.ID)
	if err != nil {
		t.Fatalf("UserByID: %v", err)
	}
	if len(user.CartData) != models.CartSize {
		t.Fatalf("cart has %d entries, want %d", len(user.CartData), models.CartSize)
	}
	for k, v := range user.CartData {
		if v != 0 {
			t.Fatalf("cart[%s] = %d, want 0", k, v)
		}
	}
	if _, ok := user.CartData["299"]; !ok {
		t.Fatal("cart is missing slot 299")
	}
	if user.Password == "pw" {
		t.Fatal("password stored in plaintext")
	}
	if user.Date.IsZero() {
		t.Fatal("signup date not set")
	}
}

func TestSignupDuplicate(t *testing.T) {
	ctx := context.Background()
	m, users, _ := newManager()

	if _, err := m.Signup(ctx, "Ann", "ann@example.com", "pw"); err != nil {
		t.Fatalf("first Signup: %v", err)
	}
	first, _ := users.UserByEmail(ctx, "ann@example.com")

	token, err := m.Signup(ctx, "Other Ann", "ann@example.com", "pw2")
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("second Signup err = %v, want ErrDuplicateAccount", err)
	}
	if token != "" {
		t.Fatal("duplicate signup returned a token")
	}

	again, _ := users.UserByEmail(ctx, "ann@example.com")
	if again.ID != first.ID || again.Name != "Ann" {
		t.Fatal("original account was replaced")
	}
}

func TestSignupMissingFields(t *testing.T) {
	m, _, _ := newManager()
	for _, in := range [][3]string{
		{"", "a@b.c", "pw"},
		{"A", "  ", "pw"},
		{"A", "a@b.c", ""},
	} {
		if _, err := m.Signup(context.Background(), in[0], in[1], in[2]); !errors.Is(err, ErrMissingFields) {
			t.Errorf("Signup(%q) err = %v", in, err)
		}
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	m, _, tokens := newManager()
	signupToken, _ := m.Signup(ctx, "Ann", "ann@example.com", "correct")
	signupID, _ := tokens.Verify(signupToken)

	token, err := m.Login(ctx, "ann@example.com", "correct")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	identity, err := tokens.Verify(token)
	if err != nil || identity.ID != signupID.ID {
		t.Fatalf("login token identity = %+v, %v", identity, err)
	}

	for _, tc := range []struct{ email, password string }{
		{"ann@example.com", "wrong"},
		{"nobody@example.com", "correct"},
	} {
		token, err := m.Login(ctx, tc.email, tc.password)
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%s) err = %v, want ErrInvalidCredentials", tc.email, err)
		}
		if token != "" {
			t.Errorf("Login(%s) issued a token", tc.email)
		}
	}
}

func TestSignupLongPassword(t *testing.T) {
	ctx := context.Background()
	m, _, tokens := newManager()
	password := strings.Repeat("x", 80)

	signupToken, err := m.Signup(ctx, "Ann", "ann@example.com", password)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	signupID, _ := tokens.Verify(signupToken)

	token, err := m.Login(ctx, "ann@example.com", password)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	identity, err := tokens.Verify(token)
	if err != nil || identity.ID != signupID.ID {
		t.Fatalf("login token identity = %+v, %v", identity, err)
	}

	if _, err := m.Login(ctx, "ann@example.com", password[:72]); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login(truncated) err = %v, want ErrInvalidCredentials", err)
	}
}
