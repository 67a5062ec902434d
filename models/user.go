package models

import "time"

type User struct {
	ID       string    `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"` // bcrypt hash
	CartData Cart      `gorm:"-" json:"cartData"`
	Date     time.Time `json:"date"`
}
