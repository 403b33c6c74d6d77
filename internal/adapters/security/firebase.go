package security

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	"github.com/quizforge/training-service/internal/ports"
)

// FirebaseVerifier resolves platform ID tokens to caller identities. This
// is the production side of the callable boundary: the client attaches the
// token it got from the identity provider and we verify it here.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (ports.Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return ports.Identity{}, fmt.Errorf("verify id token: %w", err)
	}
	identity := ports.Identity{UserID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		identity.Name = name
	}
	return identity, nil
}

// DeleteUser removes the account from the identity provider. Progress
// cleanup is the application layer's half of the cascade.
func (v *FirebaseVerifier) DeleteUser(ctx context.Context, userID string) error {
	if err := v.client.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}
	return nil
}

// ResetLinkSender implements the OTP-disabled reset path: ask the provider
// for a reset link and mail it directly, skipping code issuance.
type ResetLinkSender struct {
	client *auth.Client
	sender ports.EmailSender
}

func NewResetLinkSender(client *auth.Client, sender ports.EmailSender) *ResetLinkSender {
	return &ResetLinkSender{client: client, sender: sender}
}

func (s *ResetLinkSender) SendPasswordResetEmail(ctx context.Context, email string) error {
	link, err := s.client.PasswordResetLink(ctx, email)
	if err != nil {
		return fmt.Errorf("generate reset link: %w", err)
	}
	return s.sender.Send(ctx, ports.EmailMessage{
		To:      email,
		Subject: "Reset your password",
		Body:    "Use this link to reset your password:\n\n" + link,
	})
}
