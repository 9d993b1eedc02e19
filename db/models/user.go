package models

import "time"

// User is an account of the store. Passwords are kept as given, they are not hashed.
type User struct {
	ID        uint
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(100);not null" json:"-"`
	Email     *string   `gorm:"type:varchar(100);uniqueIndex"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
