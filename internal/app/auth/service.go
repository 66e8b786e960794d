// Package auth implements admin login and signed session tokens.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
)

// DefaultAdminEmail is the storefront's admin identity.
const DefaultAdminEmail = "admin@tahaperfume.com"

var (
	ErrRemoteNotConfigured = errors.New("remote backend not configured")
	ErrInvalidCredentials  = errors.New("Invalid login credentials")
	ErrNotAdmin            = errors.New("Not authorized as admin")
	ErrTokenRevoked        = errors.New("token has been revoked")
)

// Config holds admin credentials and token settings.
type Config struct {
	AdminEmail   string
	PasswordHash string
	Secret       string
	TokenTTL     time.Duration
	Issuer       string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token   string   `json:"token"`
	Session *Session `json:"session"`
}

// Service authenticates the single admin identity.
type Service struct {
	adminEmail       string
	passwordHash     []byte
	remoteConfigured bool
	tokens           *tokenIssuer
	clock            clock.Clock
	logger           *zap.Logger

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewService creates an auth service. Logins are refused unless the remote
// backend is configured.
func NewService(cfg Config, remoteConfigured bool, clk clock.Clock, logger *zap.Logger) *Service {
	email := normalizeEmail(cfg.AdminEmail)
	if email == "" {
		email = DefaultAdminEmail
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "perfume-catalog"
	}

	return &Service{
		adminEmail:       email,
		passwordHash:     []byte(cfg.PasswordHash),
		remoteConfigured: remoteConfigured,
		tokens: &tokenIssuer{
			secret: []byte(cfg.Secret),
			issuer: issuer,
			ttl:    ttl,
			clock:  clk,
		},
		clock:   clk,
		logger:  logger,
		revoked: make(map[string]time.Time),
	}
}

// Login checks the admin credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if !s.remoteConfigured {
		return nil, ErrRemoteNotConfigured
	}

	email = normalizeEmail(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" || len(s.passwordHash) == 0 {
		return nil, ErrInvalidCredentials
	}

	if !s.isAdminEmail(email) {
		s.logger.Warn("non-admin login attempt", zap.String("email", email))
		return nil, ErrNotAdmin
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, session, err := s.tokens.issue(email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin logged in", zap.String("email", email), zap.Time("expires_at", session.ExpiresAt))
	return &LoginResult{Token: token, Session: session}, nil
}

// Logout revokes token until it expires. Expired or malformed tokens are
// treated as already logged out.
func (s *Service) Logout(ctx context.Context, token string) error {
	session, err := s.tokens.parse(token)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.revoked[session.TokenID] = session.ExpiresAt
	return nil
}

// Authenticate verifies token and returns its session.
func (s *Service) Authenticate(ctx context.Context, token string) (*Session, error) {
	session, err := s.tokens.parse(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	_, revoked := s.revoked[session.TokenID]
	s.mu.Unlock()
	if revoked {
		return nil, ErrTokenRevoked
	}
	return session, nil
}

// IsAdmin reports whether session belongs to the admin identity.
func (s *Service) IsAdmin(session *Session) bool {
	return session != nil && s.isAdminEmail(session.Email)
}

func (s *Service) isAdminEmail(email string) bool {
	return email == s.adminEmail
}

func (s *Service) pruneLocked() {
	now := s.clock.Now()
	for id, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, id)
		}
	}
}

// HashPassword returns the bcrypt hash stored in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
