package session

import (
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v3/jwt"
)

// TokenInfo is what we can read out of an access token without the server's
// key. Purely informational: expiry enforcement stays server-side, this only
// feeds the status display.
type TokenInfo struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// InspectToken decodes the claims of a JWT access token without verifying
// the signature. Returns an error for non-JWT tokens (the demo sentinel).
func InspectToken(raw string) (*TokenInfo, error) {
	tok, err := jwt.ParseSigned(raw)
	if err != nil {
		return nil, fmt.Errorf("not a parseable JWT: %w", err)
	}

	var claims jwt.Claims
	if err := tok.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return nil, fmt.Errorf("failed to read token claims: %w", err)
	}

	info := &TokenInfo{Subject: claims.Subject, Issuer: claims.Issuer}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time()
	}
	if claims.Expiry != nil {
		info.ExpiresAt = claims.Expiry.Time()
	}
	return info, nil
}

// Expired reports whether the token's exp claim is in the past. Tokens
// without an exp claim are never reported expired.
func (ti *TokenInfo) Expired(now time.Time) bool {
	if ti.ExpiresAt.IsZero() {
		return false
	}
	return now.After(ti.ExpiresAt)
}
