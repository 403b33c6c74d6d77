package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration for the training service.
// It merges file defaults and environment overrides to support both local
// and deployed runs. Feature switches live here and are injected once at
// startup; no request-path code consults the environment.
type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	FirebaseProjectID       string
	FirebaseCredentialsFile string
	RedisURL                string

	// IdentityMode selects the verifier for the callable boundary:
	// "firebase" for platform ID tokens, "local" for HMAC JWTs.
	IdentityMode   string
	LocalJWTSecret string

	OTPEnabled            bool
	OTPTTL                time.Duration
	OTPRateLimitThreshold int
	OTPRateLimitWindow    time.Duration

	MediumHardGateEnabled bool
	LeaderboardLimit      int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	EmailAPIKey  string
	EmailFrom    string

	AllowedOrigins []string

	SweepInterval  time.Duration
	SweepBatchSize int
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		RedisURL string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Firebase struct {
		ProjectID       string `yaml:"project_id"`
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"firebase"`
	OTP struct {
		Enabled            *bool `yaml:"enabled"`
		TTLMinutes         int   `yaml:"ttl_minutes"`
		RateLimitThreshold int   `yaml:"rate_limit_threshold"`
		RateLimitWindowMin int   `yaml:"rate_limit_window_minutes"`
	} `yaml:"otp"`
	Gate struct {
		MediumHardEnabled *bool `yaml:"medium_hard_enabled"`
	} `yaml:"gate"`
	Email struct {
		SMTPHost string `yaml:"smtp_host"`
		SMTPPort int    `yaml:"smtp_port"`
		Username string `yaml:"username"`
		From     string `yaml:"from"`
	} `yaml:"email"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
// This order keeps local bootstrap simple while allowing environment-specific overrides.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:             "quiz-training-service",
		HTTPPort:              8080,
		GRPCPort:              9090,
		IdentityMode:          "firebase",
		OTPEnabled:            true,
		OTPTTL:                10 * time.Minute,
		OTPRateLimitThreshold: 5,
		OTPRateLimitWindow:    15 * time.Minute,
		MediumHardGateEnabled: true,
		LeaderboardLimit:      50,
		SMTPPort:              587,
		SweepInterval:         10 * time.Minute,
		SweepBatchSize:        200,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Firebase.ProjectID != "" {
			cfg.FirebaseProjectID = f.Firebase.ProjectID
		}
		if f.Firebase.CredentialsFile != "" {
			cfg.FirebaseCredentialsFile = f.Firebase.CredentialsFile
		}
		if f.OTP.Enabled != nil {
			cfg.OTPEnabled = *f.OTP.Enabled
		}
		if f.OTP.TTLMinutes > 0 {
			cfg.OTPTTL = time.Duration(f.OTP.TTLMinutes) * time.Minute
		}
		if f.OTP.RateLimitThreshold > 0 {
			cfg.OTPRateLimitThreshold = f.OTP.RateLimitThreshold
		}
		if f.OTP.RateLimitWindowMin > 0 {
			cfg.OTPRateLimitWindow = time.Duration(f.OTP.RateLimitWindowMin) * time.Minute
		}
		if f.Gate.MediumHardEnabled != nil {
			cfg.MediumHardGateEnabled = *f.Gate.MediumHardEnabled
		}
		if f.Email.SMTPHost != "" {
			cfg.SMTPHost = f.Email.SMTPHost
		}
		if f.Email.SMTPPort > 0 {
			cfg.SMTPPort = f.Email.SMTPPort
		}
		if f.Email.Username != "" {
			cfg.SMTPUsername = f.Email.Username
		}
		if f.Email.From != "" {
			cfg.EmailFrom = f.Email.From
		}
		if len(f.CORS.AllowedOrigins) > 0 {
			cfg.AllowedOrigins = f.CORS.AllowedOrigins
		}
	}

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.FirebaseProjectID = envOrDefault("FIREBASE_PROJECT_ID", cfg.FirebaseProjectID)
	cfg.FirebaseCredentialsFile = envOrDefault("FIREBASE_CREDENTIALS_FILE", cfg.FirebaseCredentialsFile)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.IdentityMode = strings.ToLower(strings.TrimSpace(envOrDefault("IDENTITY_MODE", cfg.IdentityMode)))
	cfg.LocalJWTSecret = envOrDefault("LOCAL_JWT_SECRET", cfg.LocalJWTSecret)
	cfg.OTPEnabled = envBool("OTP_ENABLED", cfg.OTPEnabled)
	cfg.OTPTTL = time.Duration(envInt("OTP_TTL_MINUTES", int(cfg.OTPTTL.Minutes()))) * time.Minute
	cfg.OTPRateLimitThreshold = envInt("OTP_RATE_LIMIT_THRESHOLD", cfg.OTPRateLimitThreshold)
	cfg.OTPRateLimitWindow = time.Duration(envInt("OTP_RATE_LIMIT_WINDOW_MINUTES", int(cfg.OTPRateLimitWindow.Minutes()))) * time.Minute
	cfg.MediumHardGateEnabled = envBool("MEDIUM_HARD_GATE_ENABLED", cfg.MediumHardGateEnabled)
	cfg.LeaderboardLimit = envInt("LEADERBOARD_LIMIT", cfg.LeaderboardLimit)
	cfg.SMTPHost = envOrDefault("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = envInt("SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUsername = envOrDefault("SMTP_USERNAME", cfg.SMTPUsername)
	cfg.EmailAPIKey = envOrDefault("EMAIL_API_KEY", cfg.EmailAPIKey)
	cfg.EmailFrom = envOrDefault("EMAIL_FROM", cfg.EmailFrom)
	cfg.AllowedOrigins = envCSV("ALLOWED_ORIGINS", cfg.AllowedOrigins)
	cfg.SweepInterval = time.Duration(envInt("OTP_SWEEP_INTERVAL_MINUTES", int(cfg.SweepInterval.Minutes()))) * time.Minute
	cfg.SweepBatchSize = envInt("OTP_SWEEP_BATCH_SIZE", cfg.SweepBatchSize)

	if cfg.OTPTTL <= 0 {
		return Config{}, fmt.Errorf("otp ttl must be positive")
	}
	switch cfg.IdentityMode {
	case "firebase":
	case "local":
		if cfg.LocalJWTSecret == "" {
			return Config{}, fmt.Errorf("missing LOCAL_JWT_SECRET for local identity mode")
		}
	default:
		return Config{}, fmt.Errorf("unknown identity mode %q", cfg.IdentityMode)
	}
	if cfg.SMTPHost != "" && cfg.EmailFrom == "" {
		return Config{}, fmt.Errorf("missing EMAIL_FROM for smtp sender")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envBool parses common boolean env forms while keeping a deterministic fallback.
func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return fallback
	}
}

// envCSV parses comma-separated env vars and removes empty segments.
func envCSV(name string, fallback []string) []string {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	parts := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		parts = append(parts, trimmed)
	}
	if len(parts) == 0 {
		return fallback
	}
	return parts
}
