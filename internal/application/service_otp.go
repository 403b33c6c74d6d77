package application

import (
	"context"
	"fmt"

	"github.com/quizforge/training-service/internal/domain"
)

// RequestOTP issues a fresh code for (email, purpose): generate, hash,
// overwrite any outstanding record, then email the plaintext. Overwriting
// is how supersession works; only the newest code is ever valid.
func (s *Service) RequestOTP(ctx context.Context, rawEmail, rawPurpose string) error {
	email, err := domain.NormalizeEmail(rawEmail)
	if err != nil {
		return err
	}
	purpose, err := domain.ParseOTPPurpose(rawPurpose)
	if err != nil {
		return err
	}

	if !s.cfg.OTPEnabled {
		return s.requestWithoutOTP(ctx, email, purpose)
	}

	if s.rateLimits != nil && s.cfg.OTPRateLimitThreshold > 0 {
		count, err := s.rateLimits.Increment(ctx, "otp:issue:"+email, s.cfg.OTPRateLimitWindow)
		if err == nil && count > int64(s.cfg.OTPRateLimitThreshold) {
			return fmt.Errorf("%w: too many codes requested for this address", domain.ErrRateLimited)
		}
		// A rate-limit store failure must not block issuance.
	}

	code, err := domain.GenerateOTPCode()
	if err != nil {
		return err
	}

	now := s.nowFn()
	record := domain.OTPRecord{
		Email:     email,
		Purpose:   purpose,
		CodeHash:  domain.HashOTPCode(code),
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.OTPTTL),
		Consumed:  false,
	}
	if err := s.otps.Put(ctx, record); err != nil {
		return fmt.Errorf("%w: store otp record: %v", domain.ErrUnavailable, err)
	}

	msg := otpEmail(email, purpose, code, s.cfg.OTPTTL)
	if err := s.sender.Send(ctx, msg); err != nil {
		// The stored record stays valid; the caller decides whether to retry.
		return fmt.Errorf("%w: %v", domain.ErrEmailDeliveryFailed, err)
	}
	return nil
}

// requestWithoutOTP is the alternate mode behind the OTPEnabled flag:
// signups auto-approve, password resets go through the identity provider's
// own reset email.
func (s *Service) requestWithoutOTP(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	if purpose != domain.PurposeResetPassword {
		return nil
	}
	if s.resetLinks == nil {
		return fmt.Errorf("%w: no password reset sender configured", domain.ErrEmailDeliveryFailed)
	}
	if err := s.resetLinks.SendPasswordResetEmail(ctx, email); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEmailDeliveryFailed, err)
	}
	return nil
}

// VerifyOTP checks a candidate code against the stored record and consumes
// it on the first match. The consume is an atomic document update, so of N
// concurrent calls with the correct code exactly one succeeds.
func (s *Service) VerifyOTP(ctx context.Context, rawEmail, rawPurpose, code string) error {
	email, err := domain.NormalizeEmail(rawEmail)
	if err != nil {
		return err
	}
	purpose, err := domain.ParseOTPPurpose(rawPurpose)
	if err != nil {
		return err
	}
	if !domain.ValidOTPCodeShape(code) {
		return fmt.Errorf("%w: code must be six digits", domain.ErrInvalidArgument)
	}

	if !s.cfg.OTPEnabled {
		// Auto-approve mode: no record was ever issued.
		return nil
	}

	return s.otps.Consume(ctx, email, purpose, domain.HashOTPCode(code), s.nowFn())
}
