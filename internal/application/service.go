package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quizforge/training-service/internal/domain"
	"github.com/quizforge/training-service/internal/ports"
)

// Config carries the tunables and feature switches the use-cases depend on.
// Flags are explicit named fields injected at startup; nothing in the
// request path consults the environment.
type Config struct {
	// OTPEnabled selects the normal issue/verify workflow. When false the
	// workflow auto-approves signups and delegates password resets to the
	// identity provider's own reset email.
	OTPEnabled bool
	// MediumHardGateEnabled turns the prerequisite check on. When false
	// every level is open, which is the supervised-classroom mode.
	MediumHardGateEnabled bool

	OTPTTL                time.Duration
	OTPRateLimitThreshold int
	OTPRateLimitWindow    time.Duration
	LeaderboardLimit      int
}

type Service struct {
	cfg         Config
	progress    ports.ProgressRepository
	otps        ports.OTPRepository
	leaderboard ports.LeaderboardRepository
	rateLimits  ports.RateLimitStore
	sender      ports.EmailSender
	verifier    ports.IdentityVerifier
	accounts    ports.AccountDeleter
	resetLinks  ports.PasswordResetLinker
	nowFn       func() time.Time
}

type Dependencies struct {
	Config      Config
	Progress    ports.ProgressRepository
	OTPs        ports.OTPRepository
	Leaderboard ports.LeaderboardRepository
	RateLimits  ports.RateLimitStore
	Sender      ports.EmailSender
	Verifier    ports.IdentityVerifier
	Accounts    ports.AccountDeleter
	ResetLinks  ports.PasswordResetLinker
}

func NewService(deps Dependencies) *Service {
	return &Service{
		cfg:         deps.Config,
		progress:    deps.Progress,
		otps:        deps.OTPs,
		leaderboard: deps.Leaderboard,
		rateLimits:  deps.RateLimits,
		sender:      deps.Sender,
		verifier:    deps.Verifier,
		accounts:    deps.Accounts,
		resetLinks:  deps.ResetLinks,
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}

// authenticate resolves a bearer credential through the identity verifier.
func (s *Service) authenticate(ctx context.Context, token string) (ports.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return ports.Identity{}, domain.ErrUnauthenticated
	}
	identity, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return ports.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if identity.UserID == "" {
		return ports.Identity{}, domain.ErrUnauthenticated
	}
	return identity, nil
}
