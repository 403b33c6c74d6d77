package ports

import "context"

// Identity is the verified caller attached by the callable boundary.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// IdentityVerifier resolves a bearer credential to a caller identity.
// Production uses the platform's ID tokens; local runs and tests use a
// locally signed JWT.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// AccountDeleter removes a user from the identity provider as part of the
// account-deletion cascade.
type AccountDeleter interface {
	DeleteUser(ctx context.Context, userID string) error
}

// PasswordResetLinker asks the identity provider to send its own reset
// email for an address. Used only in the OTP-disabled mode, where the
// workflow skips code issuance entirely.
type PasswordResetLinker interface {
	SendPasswordResetEmail(ctx context.Context, email string) error
}
