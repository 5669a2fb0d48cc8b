package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestVerifier(t *testing.T, cfg Config) *JWTVerifier {
	t.Helper()
	if cfg.Secret == "" {
		cfg.Secret = "test-secret"
	}
	v, err := NewJWTVerifier(cfg)
	if err != nil {
		t.Fatalf("NewJWTVerifier() error = %v", err)
	}
	return v
}

func TestNew_Disabled(t *testing.T) {
	v, err := New(Config{})
	if err != nil || v != nil {
		t.Fatalf("New(disabled) = %v, %v; want nil, nil", v, err)
	}
}

func TestNew_EnabledRequiresSecret(t *testing.T) {
	if _, err := New(Config{Enabled: true}); err == nil {
		t.Fatal("New() accepted an empty secret")
	}
	if _, err := New(Config{Enabled: true, Secret: "s", Method: "RS256"}); err == nil {
		t.Fatal("New() accepted a non-HMAC method")
	}
}

func TestJWTVerifier_Verify(t *testing.T) {
	v := newTestVerifier(t, Config{Issuer: "console"})
	token, err := v.Issue("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	other := newTestVerifier(t, Config{Secret: "other"})
	foreign, _ := other.Issue("user-2", "")

	tests := []struct {
		name    string
		setup   func(r *http.Request)
		wantSub string
		wantErr error
	}{
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, "user-1", nil},
		{"lowercase scheme", func(r *http.Request) { r.Header.Set("Authorization", "bearer "+token) }, "user-1", nil},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: token}) }, "user-1", nil},
		{"anonymous", func(*http.Request) {}, "", ErrNoSession},
		{"basic scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }, "", ErrInvalidSession},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer not-a-jwt") }, "", ErrInvalidSession},
		{"wrong key", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+foreign) }, "", ErrInvalidSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/console/wizard/build", http.NoBody)
			tt.setup(r)

			s, err := v.Verify(r)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Verify() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if s.Subject != tt.wantSub || s.Email != "a@example.com" {
				t.Errorf("session = %+v", s)
			}
		})
	}
}

func TestJWTVerifier_Expired(t *testing.T) {
	v := newTestVerifier(t, Config{TokenTTL: time.Minute})
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return issued }
	token, err := v.Issue("user-1", "")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	v.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := v.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Parse(expired) error = %v, want ErrInvalidSession", err)
	}
}

func TestJWTVerifier_IssuerMismatch(t *testing.T) {
	a := newTestVerifier(t, Config{Issuer: "a"})
	b := newTestVerifier(t, Config{Issuer: "b"})
	token, _ := a.Issue("user-1", "")
	if _, err := b.Parse(token); err == nil {
		t.Fatal("Parse() accepted a token from another issuer")
	}
}

func TestSessionContext(t *testing.T) {
	if _, ok := SessionFromContext(context.Background()); ok {
		t.Fatal("empty context has a session")
	}
	ctx := WithSession(context.Background(), &Session{Subject: "u"})
	s, ok := SessionFromContext(ctx)
	if !ok || s.Subject != "u" {
		t.Fatalf("SessionFromContext() = %v, %v", s, ok)
	}
}

func TestConfigDescribe(t *testing.T) {
	c := Config{}
	if got := c.Describe(); got != "disabled" {
		t.Errorf("Describe() = %q", got)
	}
	c = Config{Enabled: true, Secret: "s"}
	c.ApplyDefaults()
	if got := c.Describe(); got != "JWT(HS256) cookie=session" {
		t.Errorf("Describe() = %q", got)
	}
}
