package security

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed, forged, or signed
// with an unexpected algorithm.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity data carried in both bearer tokens: the user id
// (sub), role, display name, and the session id (jti) that ties the token
// back to exactly one session row for revocation.
type Claims struct {
	jwt.RegisteredClaims
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
}

// SessionID returns the jti claim, the id of the session the token belongs to.
func (c *Claims) SessionID() string { return c.ID }

// UserID returns the sub claim.
func (c *Claims) UserID() string { return c.Subject }

// TokenProvider encodes and validates the signed bearer strings. It signs
// with exactly one algorithm, fixed by the key type at construction
// (RS256 for RSA, ES256 for ECDSA); tokens presenting any other algorithm
// are rejected everywhere, including the expiry-ignoring recovery path.
type TokenProvider struct {
	privateKey crypto.Signer
	publicKey  crypto.PublicKey
	method     jwt.SigningMethod
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenProvider returns a TokenProvider signing with the given private
// key. accessTTL and refreshTTL are the access and refresh windows; both
// are configuration, not business rules.
func NewTokenProvider(privateKey crypto.Signer, publicKey crypto.PublicKey, issuer, audience string, accessTTL, refreshTTL time.Duration) *TokenProvider {
	var method jwt.SigningMethod
	switch publicKey.(type) {
	case *rsa.PublicKey:
		method = jwt.SigningMethodRS256
	case *ecdsa.PublicKey:
		method = jwt.SigningMethodES256
	}
	return &TokenProvider{
		privateKey: privateKey,
		publicKey:  publicKey,
		method:     method,
		issuer:     issuer,
		audience:   audience,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the configured access window.
func (p *TokenProvider) AccessTTL() time.Duration { return p.accessTTL }

// RefreshTTL returns the configured refresh window.
func (p *TokenProvider) RefreshTTL() time.Duration { return p.refreshTTL }

// IssueAccess encodes the short-lived access bearer string for the given
// session and user. Returns the token and its expiry instant.
func (p *TokenProvider) IssueAccess(sessionID, userID, role, displayName string) (string, time.Time, error) {
	return p.issue(sessionID, userID, role, displayName, p.accessTTL)
}

// IssueRefresh encodes the long-lived refresh bearer string for the given
// session and user. Returns the token and its expiry instant.
func (p *TokenProvider) IssueRefresh(sessionID, userID, role, displayName string) (string, time.Time, error) {
	return p.issue(sessionID, userID, role, displayName, p.refreshTTL)
}

func (p *TokenProvider) issue(sessionID, userID, role, displayName string, ttl time.Duration) (string, time.Time, error) {
	if p.method == nil {
		return "", time.Time{}, ErrInvalidToken
	}
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userID,
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role:        role,
		DisplayName: displayName,
	}
	token, err := jwt.NewWithClaims(p.method, claims).SignedString(p.privateKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ValidateAccess parses and fully validates a bearer string: signature,
// algorithm, lifetime, issuer, and audience.
func (p *TokenProvider) ValidateAccess(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, p.keyFunc,
		jwt.WithIssuer(p.issuer),
		jwt.WithAudience(p.audience),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RecoverClaims recovers the identity embedded in a bearer string whose
// lifetime may already have elapsed, so logout can still target the right
// session. Signature and algorithm are still checked; only the time-based
// claims are skipped. Returns nil for any malformed, forged, or
// wrong-algorithm input: this path runs against attacker-controllable
// cookie content and must never propagate parse failures.
func (p *TokenProvider) RecoverClaims(tokenString string) *Claims {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, p.keyFunc,
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil
	}
	if claims.Issuer != p.issuer {
		return nil
	}
	for _, aud := range claims.Audience {
		if aud == p.audience {
			return claims
		}
	}
	return nil
}

// keyFunc rejects every signing algorithm except the one the provider was
// constructed with. "none" and cross-algorithm tokens are forgery vectors.
func (p *TokenProvider) keyFunc(token *jwt.Token) (interface{}, error) {
	if p.method == nil || token.Method.Alg() != p.method.Alg() {
		return nil, ErrInvalidToken
	}
	return p.publicKey, nil
}
