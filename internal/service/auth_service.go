package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/maanvikp20/promosite/internal/apperr"
	"github.com/maanvikp20/promosite/internal/auth"
	"github.com/maanvikp20/promosite/internal/metrics"
	"github.com/maanvikp20/promosite/internal/session"
	"github.com/maanvikp20/promosite/internal/validation"
)

// dummyHash is compared against when the email does not match so both
// failure paths cost one bcrypt comparison.
const dummyHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8.dZ0/s4CyjQy2rYf3Y0qSYxQKxJRO"

type AuthService struct {
	adminEmail string
	adminHash  string
	sessions   session.Store
	secret     string
	ttl        time.Duration
	log        *zap.Logger
}

func NewAuthService(adminEmail, adminHash string, sessions session.Store, secret string, ttl time.Duration, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		adminEmail: adminEmail,
		adminHash:  adminHash,
		sessions:   sessions,
		secret:     secret,
		ttl:        ttl,
		log:        log,
	}
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Email     string    `json:"email"`
}

func (s *AuthService) TTL() time.Duration { return s.ttl }

// Login checks the admin credentials and opens an admin session.
func (s *AuthService) Login(ctx context.Context, body map[string]any) (*LoginResult, error) {
	if err := validation.Login.Validate(body); err != nil {
		return nil, err
	}
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)
	email = strings.TrimSpace(email)

	hash := s.adminHash
	emailOK := strings.EqualFold(email, s.adminEmail)
	if !emailOK {
		hash = dummyHash
	}
	if !auth.CheckPassword(password, hash) || !emailOK {
		metrics.LoginAttempts.WithLabelValues("denied").Inc()
		s.log.Warn("admin login denied", zap.String("email", email))
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	id, err := s.sessions.Create(ctx, session.Data{Admin: true, Email: s.adminEmail})
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, apperr.Internal("Server failed to create session", err)
	}
	token, err := auth.GenerateToken(s.secret, id, s.ttl)
	if err != nil {
		_ = s.sessions.Delete(ctx, id)
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, apperr.Internal("Server failed to create session", err)
	}

	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	s.log.Info("admin logged in", zap.String("email", s.adminEmail))
	return &LoginResult{Token: token, ExpiresAt: time.Now().Add(s.ttl).UTC(), Email: s.adminEmail}, nil
}

// Logout ends the session. An empty id is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperr.Internal("Server failed to end session", err)
	}
	s.log.Info("admin logged out")
	return nil
}
