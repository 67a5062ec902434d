package models

import "strconv"

// CartSize is the number of item slots every new account starts with.
const CartSize = 300

// Cart maps an item id to the quantity held by a user.
type Cart map[string]int

// NewCart returns a cart with slots "0" through "CartSize-1" set to zero.
func NewCart() Cart {
	cart := make(Cart, CartSize)
	for i := 0; i < CartSize; i++ {
		cart[strconv.Itoa(i)] = 0
	}
	return cart
}

func (c Cart) Quantity(itemID string) int {
	return c[itemID]
}

// Total is the number of units across all items.
func (c Cart) Total() int {
	total := 0
	for _, qty := range c {
		total += qty
	}
	return total
}

// CartItem is the row form of a single cart slot.
type CartItem struct {
	UserID   string `gorm:"primaryKey"`
	ItemID   string `gorm:"primaryKey"`
	Quantity int    `gorm:"not null;default:0"`
}
