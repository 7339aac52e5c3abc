package models

import (
	"time"
)

// User mirrors the original users table: an auto-assigned numeric ID plus
// the login identifier the user picked at signup. LoginID and Email carry
// unique indexes so duplicate signups fail at the database, not in a
// check-then-create race.
type User struct {
	UserID    uint64 `gorm:"primaryKey"`
	LoginID   string `gorm:"uniqueIndex;size:64;not null"`
	Password  string `gorm:"size:255;not null"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Phone     string `gorm:"index;size:32;not null"`
	Birth     string `gorm:"size:16"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
