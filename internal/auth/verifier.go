// Package auth verifies session tokens issued by the external identity
// provider and gates the dashboard behind them.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/newsroom-web/internal/config"
)

var (
	// ErrNoToken is returned when a request carries no session token
	ErrNoToken = errors.New("no session token")
	// ErrInvalidToken is returned when a token fails verification
	ErrInvalidToken = errors.New("invalid session token")
)

// Claims are the session token claims the site relies on
type Claims struct {
	jwt.RegisteredClaims
	SessionID       string `json:"sid,omitempty"`
	AuthorizedParty string `json:"azp,omitempty"`
}

// Verifier checks session tokens against the provider's signing key
type Verifier struct {
	parser     *jwt.Parser
	key        interface{}
	cookieName string
	parties    map[string]bool
}

// NewVerifier builds a Verifier from the auth configuration.
// A PEM public key (RSA or ECDSA) takes precedence over the HMAC secret.
func NewVerifier(cfg *config.AuthConfig) (*Verifier, error) {
	var key interface{}
	var methods []string

	switch {
	case cfg.PublicKeyPEM != "":
		pemBytes := []byte(cfg.PublicKeyPEM)
		if rsaKey, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes); err == nil {
			key = rsaKey
			methods = []string{"RS256", "RS384", "RS512"}
		} else if ecKey, err := jwt.ParseECPublicKeyFromPEM(pemBytes); err == nil {
			key = ecKey
			methods = []string{"ES256", "ES384", "ES512"}
		} else {
			return nil, fmt.Errorf("parse auth public key: %w", err)
		}
	case cfg.SecretKey != "":
		key = []byte(cfg.SecretKey)
		methods = []string{"HS256", "HS384", "HS512"}
	default:
		return nil, errors.New("auth requires a public key or a secret key")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.ClockSkew),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	parties := make(map[string]bool, len(cfg.AuthorizedParties))
	for _, p := range cfg.AuthorizedParties {
		parties[p] = true
	}

	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "__session"
	}

	return &Verifier{
		parser:     jwt.NewParser(opts...),
		key:        key,
		cookieName: cookieName,
		parties:    parties,
	}, nil
}

// Verify parses and validates a raw token
func (v *Verifier) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	// azp is only checked when the provider sets it and parties are configured
	if len(v.parties) > 0 && claims.AuthorizedParty != "" && !v.parties[claims.AuthorizedParty] {
		return nil, fmt.Errorf("%w: unauthorized party %q", ErrInvalidToken, claims.AuthorizedParty)
	}
	return claims, nil
}

// VerifyRequest reads the token from the Authorization header or the session cookie
func (v *Verifier) VerifyRequest(r *http.Request) (*Claims, error) {
	raw := tokenFromRequest(r, v.cookieName)
	if raw == "" {
		return nil, ErrNoToken
	}
	return v.Verify(raw)
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}
