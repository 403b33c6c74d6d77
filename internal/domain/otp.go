package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"net/mail"
	"regexp"
	"strings"
	"time"
)

// OTPPurpose binds a code to the flow it was issued for. A signup code can
// never satisfy a password-reset verification and vice versa.
type OTPPurpose string

const (
	PurposeSignup        OTPPurpose = "signup"
	PurposeResetPassword OTPPurpose = "reset_password"
)

// ParseOTPPurpose validates a purpose string. Empty input defaults to signup,
// matching the legacy send endpoint.
func ParseOTPPurpose(raw string) (OTPPurpose, error) {
	switch OTPPurpose(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return PurposeSignup, nil
	case PurposeSignup:
		return PurposeSignup, nil
	case PurposeResetPassword:
		return PurposeResetPassword, nil
	default:
		return "", fmt.Errorf("%w: unknown purpose %q", ErrInvalidArgument, raw)
	}
}

// OTPRecord is the stored state for one (email, purpose) key. Only the
// newest record for a key is ever valid; issuing again overwrites it.
type OTPRecord struct {
	Email     string     `json:"email"`
	Purpose   OTPPurpose `json:"purpose"`
	CodeHash  string     `json:"codeHash"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
	Consumed  bool       `json:"consumed"`
}

// Key is the document id for the record's (email, purpose) pair.
func (r OTPRecord) Key() string {
	return OTPKey(r.Email, r.Purpose)
}

// OTPKey builds the storage key for an (email, purpose) pair.
func OTPKey(email string, purpose OTPPurpose) string {
	return email + "#" + string(purpose)
}

// Expired reports whether the record is past its validity window.
func (r OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Matches compares a candidate code against the stored hash in constant time.
func (r OTPRecord) Matches(code string) bool {
	return subtle.ConstantTimeCompare([]byte(HashOTPCode(code)), []byte(r.CodeHash)) == 1
}

var otpCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// ValidOTPCodeShape reports whether the candidate is a six-digit decimal string.
func ValidOTPCodeShape(code string) bool {
	return otpCodePattern.MatchString(code)
}

// GenerateOTPCode draws a uniform six-digit code from crypto/rand.
// All 900000 values in [100000, 999999] are equally likely.
func GenerateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// HashOTPCode is the one-way storage form of a code. Plaintext codes only
// ever reach the user's inbox.
func HashOTPCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// NormalizeEmail lowercases and validates the correlation key for OTP records.
func NormalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidArgument)
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidArgument)
	}
	// The bare address is the correlation key; display names must not
	// leak into it or a later verify with the plain address cannot match.
	return strings.ToLower(addr.Address), nil
}
