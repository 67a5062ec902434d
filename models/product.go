package models

import "time"

type Product struct {
	Key       uint      `gorm:"primaryKey;autoIncrement" json:"-"` // storage key, never exposed
	ID        int       `gorm:"column:product_id;uniqueIndex;not null" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Image     string    `gorm:"not null" json:"image"`
	Category  string    `gorm:"not null;index" json:"category"`
	NewPrice  float64   `gorm:"not null" json:"new_price"`
	OldPrice  float64   `gorm:"not null" json:"old_price"`
	Date      time.Time `gorm:"index" json:"date"`
	Available bool      `gorm:"not null" json:"available"`
}
