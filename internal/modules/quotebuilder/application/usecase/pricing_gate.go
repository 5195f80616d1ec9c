package usecase

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mealQuote/internal/shared/auth"
)

const PricingScope = "pricing"

var ErrWrongPassword = errors.New("wrong pricing password")

// SessionIssuer signs session tokens.
type SessionIssuer interface {
	Issue(subject, scope string) (string, time.Time, error)
	auth.TokenValidator
}

// PricingGate unlocks the pricing pages with a shared password. It keeps casual visitors out
// of pricing; it is not an access control model.
type PricingGate struct {
	password     []byte
	passwordHash []byte
	tokens       SessionIssuer
}

// NewPricingGate prefers the bcrypt hash when both a hash and a plaintext password are set.
func NewPricingGate(password, passwordHash string, tokens SessionIssuer) *PricingGate {
	gate := &PricingGate{tokens: tokens}
	if hash := strings.TrimSpace(passwordHash); hash != "" {
		gate.passwordHash = []byte(hash)
	} else if password != "" {
		gate.password = []byte(password)
	}
	return gate
}

type PricingSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (g *PricingGate) Unlock(password string) (PricingSession, error) {
	if !g.matches(password) {
		slog.Warn("pricing unlock rejected")
		return PricingSession{}, ErrWrongPassword
	}
	token, expiresAt, err := g.tokens.Issue(PricingScope, PricingScope)
	if err != nil {
		return PricingSession{}, err
	}
	return PricingSession{Token: token, ExpiresAt: expiresAt}, nil
}

// Authorize accepts tokens issued by Unlock that are still valid.
func (g *PricingGate) Authorize(token string) error {
	claims, err := g.tokens.Validate(token)
	if err != nil {
		return err
	}
	if claims.Scope != PricingScope {
		return auth.ErrInvalidToken
	}
	return nil
}

func (g *PricingGate) matches(password string) bool {
	if password == "" {
		return false
	}
	if len(g.passwordHash) > 0 {
		return bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)) == nil
	}
	if len(g.password) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(g.password, []byte(password)) == 1
}
