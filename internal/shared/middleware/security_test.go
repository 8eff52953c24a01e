package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestIsHostAllowed(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		allowedHosts []string
		want         bool
	}{
		{
			name:         "empty allowed hosts returns true",
			host:         "api.caixahub.com.br",
			allowedHosts: []string{},
			want:         true,
		},
		{
			name:         "exact match with port",
			host:         "api.caixahub.com.br:8443",
			allowedHosts: []string{"api.caixahub.com.br:8443"},
			want:         true,
		},
		{
			name:         "host with port matches allowed without port",
			host:         "api.caixahub.com.br:8443",
			allowedHosts: []string{"api.caixahub.com.br"},
			want:         true,
		},
		{
			name:         "localhost with port",
			host:         "localhost:3000",
			allowedHosts: []string{"localhost"},
			want:         true,
		},
		{
			name:         "IPv6 loopback with port",
			host:         "[::1]:8080",
			allowedHosts: []string{"[::1]:8080"},
			want:         true,
		},
		{
			name:         "case insensitive match",
			host:         "API.CaixaHub.com.BR",
			allowedHosts: []string{"api.caixahub.com.br"},
			want:         true,
		},
		{
			name:         "unknown host rejected",
			host:         "evil.com",
			allowedHosts: []string{"api.caixahub.com.br"},
			want:         false,
		},
		{
			name:         "subdomain not implicitly allowed",
			host:         "evil.api.caixahub.com.br",
			allowedHosts: []string{"api.caixahub.com.br"},
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsHostAllowed(tt.host, tt.allowedHosts)
			if got != tt.want {
				t.Errorf("IsHostAllowed(%q, %v) = %v, want %v", tt.host, tt.allowedHosts, got, tt.want)
			}
		})
	}
}

func TestHSTS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := HSTS(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	got := rr.Header().Get("Strict-Transport-Security")
	if !strings.Contains(got, "max-age=31536000") {
		t.Errorf("HSTS header = %q, want max-age=31536000", got)
	}
}

func TestSecureCookies(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "abc", Path: "/"})
		w.WriteHeader(http.StatusOK)
	})

	handler := SecureCookies(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	cookies := rr.Header()["Set-Cookie"]
	if len(cookies) != 1 {
		t.Fatalf("expected 1 Set-Cookie header, got %d", len(cookies))
	}
	for _, attr := range []string{"Secure", "HttpOnly", "SameSite=Strict"} {
		if !strings.Contains(cookies[0], attr) {
			t.Errorf("cookie %q missing %s attribute", cookies[0], attr)
		}
	}
}

func TestSecureCookies_PreservesExistingAttributes(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Set-Cookie", "session=xyz; Path=/; SameSite=Lax")
		w.WriteHeader(http.StatusOK)
	})

	handler := SecureCookies(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	cookie := rr.Header().Get("Set-Cookie")
	if strings.Contains(cookie, "SameSite=Strict") {
		t.Errorf("existing SameSite attribute should be preserved, got %q", cookie)
	}
	if !strings.Contains(cookie, "SameSite=Lax") {
		t.Errorf("cookie %q lost SameSite=Lax", cookie)
	}
	if !strings.Contains(cookie, "Secure") {
		t.Errorf("cookie %q missing Secure attribute", cookie)
	}
}

func TestRequireHTTPS_RedirectsHTTP(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called for plain HTTP")
	})

	handler := RequireHTTPS(next)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Host = "api.caixahub.com.br"
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusMovedPermanently {
		t.Fatalf("expected 301, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "https://api.caixahub.com.br/health" {
		t.Errorf("Location = %q", loc)
	}
}

func TestRequireHTTPS_AllowsForwardedHTTPS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := RequireHTTPS(next)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Host = "api.caixahub.com.br"
	req.Header.Set("X-Forwarded-Proto", "https")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}
