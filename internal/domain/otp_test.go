package domain

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTPCodeRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := GenerateOTPCode()
		require.NoError(t, err)
		require.True(t, ValidOTPCodeShape(code), "code %q", code)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestValidOTPCodeShape(t *testing.T) {
	valid := []string{"100000", "999999", "123456"}
	for _, code := range valid {
		assert.True(t, ValidOTPCodeShape(code), code)
	}
	invalid := []string{"", "12345", "1234567", "12345a", " 123456", "123456 ", "12.456", "-12345"}
	for _, code := range invalid {
		assert.False(t, ValidOTPCodeShape(code), code)
	}
}

func TestHashOTPCode(t *testing.T) {
	a := HashOTPCode("123456")
	b := HashOTPCode("123456")
	c := HashOTPCode("654321")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
	assert.NotContains(t, a, "123456")
}

func TestOTPRecordMatches(t *testing.T) {
	record := OTPRecord{CodeHash: HashOTPCode("482913")}
	assert.True(t, record.Matches("482913"))
	assert.False(t, record.Matches("482914"))
	assert.False(t, record.Matches(""))
}

func TestOTPRecordExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := OTPRecord{ExpiresAt: now.Add(10 * time.Minute)}
	assert.False(t, record.Expired(now))
	assert.False(t, record.Expired(now.Add(10*time.Minute)))
	assert.True(t, record.Expired(now.Add(10*time.Minute+time.Second)))
}

func TestOTPKey(t *testing.T) {
	record := OTPRecord{Email: "a@b.com", Purpose: PurposeResetPassword}
	assert.Equal(t, "a@b.com#reset_password", record.Key())
	assert.Equal(t, "a@b.com#signup", OTPKey("a@b.com", PurposeSignup))
}

func TestParseOTPPurpose(t *testing.T) {
	purpose, err := ParseOTPPurpose("signup")
	require.NoError(t, err)
	assert.Equal(t, PurposeSignup, purpose)

	purpose, err = ParseOTPPurpose(" Reset_Password ")
	require.NoError(t, err)
	assert.Equal(t, PurposeResetPassword, purpose)

	purpose, err = ParseOTPPurpose("")
	require.NoError(t, err)
	assert.Equal(t, PurposeSignup, purpose)

	_, err = ParseOTPPurpose("login")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Student@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", got)

	// Display-name forms collapse to the bare address so the key a later
	// verify derives from the plain address always matches.
	got, err = NormalizeEmail("Bob <Bob@Example.com>")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got)

	for _, raw := range []string{"", "   ", "not-an-email", "a@", "@b.com", "a b@c.com"} {
		_, err := NormalizeEmail(raw)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "raw=%q err=%v", raw, err)
	}
}
