package dbhelper

import (
	"testing"
	"time"

	"github.com/dohee12/Back-GENIE/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueLookupConsume(t *testing.T) {
	ledger := NewVerificationLedger(newTestDB(t), 5*time.Minute)

	code, err := ledger.Issue("5550000")
	require.NoError(t, err)
	require.NotEmpty(t, code)

	ok, err := ledger.Lookup("5550000", code)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ledger.Lookup("5550000", code+"x")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ledger.Lookup("5551111", code)
	require.NoError(t, err)
	assert.False(t, ok, "a code is bound to the phone it was issued for")

	require.NoError(t, ledger.Consume("5550000"))

	ok, err = ledger.Lookup("5550000", code)
	require.NoError(t, err)
	assert.False(t, ok, "a consumed code must never verify again")
}

func TestReissueReplacesPriorCode(t *testing.T) {
	db := newTestDB(t)
	ledger := NewVerificationLedger(db, 5*time.Minute)

	first, err := ledger.Issue("5550000")
	require.NoError(t, err)
	second, err := ledger.Issue("5550000")
	require.NoError(t, err)

	ok, err := ledger.Lookup("5550000", first)
	require.NoError(t, err)
	if first != second {
		assert.False(t, ok, "reissuing must invalidate the prior code")
	}
	ok, err = ledger.Lookup("5550000", second)
	require.NoError(t, err)
	assert.True(t, ok)

	var count int64
	require.NoError(t, db.Model(&models.VerificationCode{}).Where("phone = ?", "5550000").Count(&count).Error)
	assert.EqualValues(t, 1, count, "at most one row per phone")
}

func TestExpiredCodeReadsAbsent(t *testing.T) {
	db := newTestDB(t)
	ledger := NewVerificationLedger(db, time.Millisecond)

	code, err := ledger.Issue("5550000")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	ok, err := ledger.Lookup("5550000", code)
	require.NoError(t, err)
	assert.False(t, ok, "expired entries must read as absent")

	require.NoError(t, ledger.PurgeExpired())
	var count int64
	require.NoError(t, db.Model(&models.VerificationCode{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestConsumeUnknownPhone(t *testing.T) {
	ledger := NewVerificationLedger(newTestDB(t), 5*time.Minute)
	assert.NoError(t, ledger.Consume("5550000"))
}
