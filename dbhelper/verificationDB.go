package dbhelper

import (
	"errors"
	"fmt"
	"time"

	"github.com/dohee12/Back-GENIE/models"
	"github.com/dohee12/Back-GENIE/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VerificationLedger owns the verification_codes table. Codes live in the
// same database as users, so they survive process restarts within their
// validity window. At most one code is active per phone: the phone column
// is the primary key and Issue upserts over it.
type VerificationLedger struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewVerificationLedger(db *gorm.DB, ttl time.Duration) *VerificationLedger {
	return &VerificationLedger{db: db, ttl: ttl}
}

// Issue stores a fresh code for the phone, replacing any earlier one.
func (l *VerificationLedger) Issue(phone string) (string, error) {
	entry := models.VerificationCode{
		Phone:     phone,
		Code:      utils.GetVerificationCode(),
		ExpiresAt: time.Now().Add(l.ttl),
	}
	result := l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at"}),
	}).Create(&entry)
	if result.Error != nil {
		return "", fmt.Errorf("issue verification code: %w", result.Error)
	}
	return entry.Code, nil
}

// Lookup reports whether the phone currently holds exactly this code.
// Expired entries read as absent.
func (l *VerificationLedger) Lookup(phone, code string) (bool, error) {
	var entry models.VerificationCode
	result := l.db.Where("phone = ? AND code = ?", phone, code).First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("verification code lookup: %w", result.Error)
	}
	if time.Now().After(entry.ExpiresAt) {
		return false, nil
	}
	return true, nil
}

// Consume deletes the phone's entry unconditionally. Call it right after a
// successful Lookup so a code can never be used twice.
func (l *VerificationLedger) Consume(phone string) error {
	result := l.db.Where("phone = ?", phone).Delete(&models.VerificationCode{})
	if result.Error != nil {
		return fmt.Errorf("consume verification code: %w", result.Error)
	}
	return nil
}

// PurgeExpired drops rows past their expiry. Lookup already treats them as
// absent; this just keeps the table from accumulating dead entries.
func (l *VerificationLedger) PurgeExpired() error {
	result := l.db.Where("expires_at < ?", time.Now()).Delete(&models.VerificationCode{})
	if result.Error != nil {
		return fmt.Errorf("purge expired codes: %w", result.Error)
	}
	return nil
}
