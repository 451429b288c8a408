package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authModel "akcert_backend/internals/features/auth/model"
	authRepo "akcert_backend/internals/features/auth/repository"
)

var (
	ErrInvalidCredential = errors.New("Invalid password")
	ErrUnauthorized      = errors.New("Unauthorized")
)

/* ==========================
   Session value
========================== */

// Session is what the server remembers about a grant.
type Session struct {
	Authenticated bool
	GrantedAt     time.Time
}

// IsValid reports whether the grant is authenticated and no older than ttl.
// Exactly ttl after the grant is still valid.
func (s Session) IsValid(now time.Time, ttl time.Duration) bool {
	if !s.Authenticated || s.GrantedAt.IsZero() {
		return false
	}
	return now.Sub(s.GrantedAt) <= ttl
}

// SessionGrant is handed to the client after a successful login.
type SessionGrant struct {
	SessionID uuid.UUID
	Token     string
	GrantedAt time.Time
	ExpiresAt time.Time
}

// ClientMeta is informational data stored alongside a session.
type ClientMeta struct {
	UserAgent string
	IP        string
}

/* ==========================
   Authority
========================== */

type Authority struct {
	DB        *gorm.DB
	adminHash []byte
	secret    []byte
	TTL       time.Duration
	Now       func() time.Time
}

func NewAuthority(db *gorm.DB, adminPasswordHash []byte, sessionSecret string, ttl time.Duration) *Authority {
	return &Authority{
		DB:        db,
		adminHash: adminPasswordHash,
		secret:    []byte(sessionSecret),
		TTL:       ttl,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Authenticate checks the candidate secret and opens a new session.
func (a *Authority) Authenticate(ctx context.Context, candidate string, meta ClientMeta) (*SessionGrant, error) {
	if candidate == "" || bcrypt.CompareHashAndPassword(a.adminHash, []byte(candidate)) != nil {
		return nil, ErrInvalidCredential
	}

	now := a.Now().UTC()
	row := &authModel.AdminSessionModel{
		ID:            uuid.New(),
		Authenticated: true,
		GrantedAt:     now,
		UserAgent:     strptr(meta.UserAgent),
		IP:            strptr(meta.IP),
	}
	if err := authRepo.CreateSession(ctx, a.DB, row); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	expiresAt := now.Add(a.TTL)
	claims := sessionClaims{
		SessionID: row.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        row.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &SessionGrant{
		SessionID: row.ID,
		Token:     token,
		GrantedAt: now,
		ExpiresAt: expiresAt,
	}, nil
}

// Check reports whether token belongs to a live session.
// A session that exists but is no longer valid is cleared here.
func (a *Authority) Check(ctx context.Context, token string) (bool, error) {
	sid, ok := a.sessionIDFromToken(token)
	if !ok {
		return false, nil
	}

	row, err := authRepo.FindSessionByID(ctx, a.DB, sid)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}

	s := Session{Authenticated: row.Authenticated, GrantedAt: row.GrantedAt}
	if s.IsValid(a.Now().UTC(), a.TTL) {
		return true, nil
	}

	if err := a.Clear(ctx, sid); err != nil {
		log.Warn().Err(err).Str("sid", sid.String()).Msg("failed to clear expired session")
	}
	return false, nil
}

// Clear drops the server-side state of one session.
func (a *Authority) Clear(ctx context.Context, sid uuid.UUID) error {
	return authRepo.DeleteSession(ctx, a.DB, sid)
}

// Revoke ends the session behind token, if any. Always idempotent.
func (a *Authority) Revoke(ctx context.Context, token string) error {
	sid, ok := a.sessionIDFromToken(token)
	if !ok {
		return nil
	}
	return a.Clear(ctx, sid)
}

// PurgeExpired deletes every session whose grant has run out.
func (a *Authority) PurgeExpired(ctx context.Context) (int64, error) {
	return authRepo.CleanupExpiredSessions(ctx, a.DB, a.Now().UTC().Add(-a.TTL))
}

// Expiry is decided by the server-side grant, so claims validation is skipped
// and only the signature is verified.
func (a *Authority) sessionIDFromToken(token string) (uuid.UUID, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return uuid.Nil, false
	}

	claims := &sessionClaims{}
	parser := jwt.Parser{
		SkipClaimsValidation: true,
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
	}
	if _, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}); err != nil {
		log.Debug().Err(err).Msg("session token rejected")
		return uuid.Nil, false
	}

	sid, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return uuid.Nil, false
	}
	return sid, true
}

func strptr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
