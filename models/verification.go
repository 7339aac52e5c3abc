package models

import (
	"time"
)

// VerificationCode is a short-lived phone ownership proof. Phone is the
// primary key, so issuing a new code for a phone replaces the old row.
type VerificationCode struct {
	Phone     string    `gorm:"primaryKey;size:32"`
	Code      string    `gorm:"size:16;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (VerificationCode) TableName() string {
	return "verification_codes"
}
