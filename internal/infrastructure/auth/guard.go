package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized signals an invalid or expired credential. Signature and
// expiry are the only checks performed; no network call is involved.
var ErrUnauthorized = errors.New("auth: credential is invalid or expired")

// Claims is the strict schema carried by every session token. Decoding a
// token whose payload does not satisfy the schema fails with ErrUnauthorized
// instead of yielding partially-populated claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Guard verifies bearer credentials and issues new ones.
type Guard struct {
	secret       []byte
	tokenTTL     time.Duration
	reauthWindow time.Duration
}

const (
	defaultTokenTTL     = 24 * time.Hour
	defaultReauthWindow = 5 * time.Minute
)

// NewGuard constructs a Guard with the given HMAC secret.
func NewGuard(secret string) *Guard {
	return &Guard{
		secret:       []byte(secret),
		tokenTTL:     defaultTokenTTL,
		reauthWindow: defaultReauthWindow,
	}
}

// NewGuardFromEnv constructs a Guard using the JWT_SECRET environment variable.
func NewGuardFromEnv() (*Guard, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return nil, errors.New("auth: JWT_SECRET environment variable is not set")
	}
	return NewGuard(secret), nil
}

// Generate signs a session token for the given identity.
func (g *Guard) Generate(userID string, name string, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(g.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "go-collab",
		},
		UserID: userID,
		Name:   name,
		Role:   role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded claims.
// Any failure, including a payload that misses required fields, maps to
// ErrUnauthorized.
func (g *Guard) Verify(credential string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrUnauthorized
	}
	if claims.UserID == "" {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// RequiresReauth reports whether the credential expires within the lookahead
// window, so clients can renew before the push channel drops on expiry.
func (g *Guard) RequiresReauth(credential string) bool {
	claims, err := g.Verify(credential)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < g.reauthWindow
}

// ParseUnverified decodes claims without checking the signature. It backs the
// optimistic half of the client's optimistic-then-confirm session loading and
// must never be used for authorization decisions on the server.
func ParseUnverified(credential string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(credential, claims); err != nil {
		return nil, ErrUnauthorized
	}
	if claims.UserID == "" {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
