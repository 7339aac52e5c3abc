package utils

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/xlzd/gotp"
	"golang.org/x/crypto/bcrypt"
)

var secretLength int = 16

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), HASH_ROUNDS)
	return string(bytes), err
}

func ComparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// IsHashed reports whether a stored password already carries a bcrypt
// marker. Rows migrated from the legacy schema hold raw plaintext and
// fail this check until the startup rehash pass rewrites them.
func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

func getJWTSecret() ([]byte, error) {
	secret := os.Getenv(JWT_SECRET_KEY)
	if len(secret) == 0 {
		return nil, errors.New("JWT_SECRET_KEY is not set")
	}
	return []byte(secret), nil
}

// CreateToken signs an HS256 access token whose subject is the user's ID.
func CreateToken(subject string) (string, error) {
	signingKey, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(TOKEN_DURATION)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

// VerifyToken parses and validates a token string and returns its subject.
func VerifyToken(tokenString string) (string, error) {
	signingKey, err := getJWTSecret()
	if err != nil {
		return "", err
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New(INVALID_TOKEN_ERROR)
	}
	return claims.Subject, nil
}

// GetVerificationCode builds a one-off TOTP over a fresh random secret, so
// every issuance gets an independent code. Collisions across phones are
// possible but harmless for a short-lived, low-value secret.
func GetVerificationCode() string {
	return gotp.NewDefaultTOTP(gotp.RandomSecret(secretLength)).Now()
}
