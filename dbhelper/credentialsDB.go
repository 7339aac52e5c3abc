package dbhelper

import (
	"errors"
	"fmt"

	"github.com/dohee12/Back-GENIE/models"
	"github.com/dohee12/Back-GENIE/utils"
	"gorm.io/gorm"
)

// CredentialStore owns the users table: identity lookups, signup, password
// verification and reset. It is built once at startup and injected into the
// route handlers.
type CredentialStore struct {
	db *gorm.DB
}

func NewCredentialStore(db *gorm.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

func (s *CredentialStore) findOne(query string, args ...interface{}) (*models.User, error) {
	var user models.User
	result := s.db.Where(query, args...).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("user lookup: %w", result.Error)
	}
	return &user, nil
}

func (s *CredentialStore) FindByUserID(userID uint64) (*models.User, error) {
	return s.findOne("user_id = ?", userID)
}

func (s *CredentialStore) FindByLoginID(loginID string) (*models.User, error) {
	return s.findOne("login_id = ?", loginID)
}

func (s *CredentialStore) FindByEmail(email string) (*models.User, error) {
	return s.findOne("email = ?", email)
}

// FindByBirthPhone recovers an account from secondary identity factors.
// Both must match.
func (s *CredentialStore) FindByBirthPhone(birth, phone string) (*models.User, error) {
	return s.findOne("birth = ? AND phone = ?", birth, phone)
}

// FindByLoginIDBirthPhone authorizes a password-reset request without the
// current password.
func (s *CredentialStore) FindByLoginIDBirthPhone(loginID, birth, phone string) (*models.User, error) {
	return s.findOne("login_id = ? AND birth = ? AND phone = ?", loginID, birth, phone)
}

// Create hashes the password and inserts the user. Duplicate loginId or
// email surfaces as ErrConflict; the unique indexes make the check-then-create
// race impossible, so no pre-lookup is done here.
func (s *CredentialStore) Create(loginID, password, email, phone, birth string) (*models.User, error) {
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		LoginID:  loginID,
		Password: passwordHash,
		Email:    email,
		Phone:    phone,
		Birth:    birth,
	}
	result := s.db.Create(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", result.Error)
	}
	return &user, nil
}

// VerifyPassword loads the user and compares the candidate against the
// stored bcrypt hash. The hash never leaves this store in plaintext form
// and is never compared byte-for-byte by hand.
func (s *CredentialStore) VerifyPassword(loginID, password string) (*models.User, error) {
	user, err := s.FindByLoginID(loginID)
	if err != nil {
		return nil, err
	}
	if err := utils.ComparePasswords(user.Password, password); err != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// ResetPassword overwrites the password hash for every user matching the
// phone. Callers must have already confirmed phone ownership through the
// verification ledger.
func (s *CredentialStore) ResetPassword(phone, newPassword string) error {
	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	result := s.db.Model(&models.User{}).Where("phone = ?", phone).Update("password", passwordHash)
	if result.Error != nil {
		return fmt.Errorf("reset password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RehashLegacyPasswords replaces any raw plaintext password left over from
// the legacy schema with its bcrypt hash. The marker-prefix check makes the
// pass idempotent: already-hashed rows are skipped, so running it twice
// never double-hashes. Must finish before the server starts answering
// authentication requests.
func (s *CredentialStore) RehashLegacyPasswords() error {
	var users []models.User
	if result := s.db.Find(&users); result.Error != nil {
		return fmt.Errorf("scan users: %w", result.Error)
	}
	for _, user := range users {
		if utils.IsHashed(user.Password) {
			continue
		}
		passwordHash, err := utils.HashPassword(user.Password)
		if err != nil {
			return fmt.Errorf("hash legacy password for user %d: %w", user.UserID, err)
		}
		result := s.db.Model(&user).Update("password", passwordHash)
		if result.Error != nil {
			return fmt.Errorf("store rehashed password for user %d: %w", user.UserID, result.Error)
		}
	}
	return nil
}
