package httpclient

import (
	"net/http"
	"testing"
)

func TestAuthConfig_Apply(t *testing.T) {
	tests := []struct {
		name   string
		auth   *AuthConfig
		header string
		want   string
	}{
		{"bearer", BearerAuth("my-token"), "Authorization", "Bearer my-token"},
		{"api key default header", APIKeyAuth("secret"), "X-API-Key", "secret"},
		{"api key custom header", APIKeyAuthHeader("sk-ant", "x-api-key"), "x-api-key", "sk-ant"},
		{"api key empty header name", &AuthConfig{Type: AuthAPIKey, Key: "k"}, "X-API-Key", "k"},
		{"none", &AuthConfig{Type: AuthNone}, "Authorization", ""},
		{"nil", nil, "Authorization", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
			tt.auth.apply(req)
			if got := req.Header.Get(tt.header); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
