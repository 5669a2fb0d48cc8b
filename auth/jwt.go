package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload of a session token.
type Claims struct {
	gojwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// JWTVerifier verifies and issues HMAC-signed session tokens.
type JWTVerifier struct {
	cfg Config
	now func() time.Time
}

// NewJWTVerifier validates cfg and returns a verifier.
func NewJWTVerifier(cfg Config) (*JWTVerifier, error) {
	cfg.ApplyDefaults()
	cfg.Enabled = true
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &JWTVerifier{cfg: cfg, now: time.Now}, nil
}

// Verify reads the Bearer token, or the session cookie when the header is
// absent, and returns the session it carries.
func (v *JWTVerifier) Verify(r *http.Request) (*Session, error) {
	token, err := v.tokenFromRequest(r)
	if err != nil {
		return nil, err
	}
	return v.Parse(token)
}

// Parse verifies a raw token string.
func (v *JWTVerifier) Parse(token string) (*Session, error) {
	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(token, claims, v.keyFunc, v.parserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidSession
	}
	s := &Session{Subject: claims.Subject, Email: claims.Email}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Issue signs a token for subject that expires after the configured TTL.
func (v *JWTVerifier) Issue(subject, email string) (string, error) {
	now := v.now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    v.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(v.cfg.TokenTTL)),
		},
		Email: email,
	}
	if v.cfg.Audience != "" {
		claims.Audience = gojwt.ClaimStrings{v.cfg.Audience}
	}
	signed, err := gojwt.NewWithClaims(v.signingMethod(), claims).SignedString([]byte(v.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

func (v *JWTVerifier) tokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", fmt.Errorf("%w: malformed authorization header", ErrInvalidSession)
		}
		return strings.TrimSpace(token), nil
	}
	if c, err := r.Cookie(v.cfg.CookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	return "", ErrNoSession
}

func (v *JWTVerifier) keyFunc(token *gojwt.Token) (interface{}, error) {
	if token.Method.Alg() != v.signingMethod().Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
	}
	return []byte(v.cfg.Secret), nil
}

func (v *JWTVerifier) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{v.signingMethod().Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(v.now),
	}
	if v.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(v.cfg.Issuer))
	}
	if v.cfg.Audience != "" {
		opts = append(opts, gojwt.WithAudience(v.cfg.Audience))
	}
	return opts
}

func (v *JWTVerifier) signingMethod() gojwt.SigningMethod {
	switch v.cfg.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}

// IsNoSession reports whether err means the request was anonymous.
func IsNoSession(err error) bool {
	return errors.Is(err, ErrNoSession)
}
