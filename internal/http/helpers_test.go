package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseIDFromPath(t *testing.T) {
	tests := []struct {
		path   string
		wantID int64
		wantOK bool
	}{
		{"/transactions/1", 1, true},
		{"/transactions/42", 42, true},
		{"/transactions/42/", 42, true},
		{"/transactions/", 0, false},
		{"/transactions/abc", 0, false},
		{"/transactions/0", 0, false},
		{"/transactions/-3", 0, false},
		{"/transactions/1/extra", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			id, ok := parseIDFromPath(tt.path, "/transactions/")
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("parseIDFromPath(%q) = (%d, %v), want (%d, %v)", tt.path, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestExtractClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "socket address only",
			remoteAddr: "10.0.0.5:4321",
			want:       "10.0.0.5",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.5:4321",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for chain takes first",
			remoteAddr: "10.0.0.5:4321",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.5:4321",
			headers:    map[string]string{"X-Real-IP": "198.51.100.2"},
			want:       "198.51.100.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := extractClientIP(req); got != tt.want {
				t.Errorf("extractClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  padded  ", "padded"},
		{"plain", "plain"},
		{"with\x00control\x07chars", "withcontrolchars"},
		{"keeps\ttabs and\nnewlines", "keeps\ttabs and\nnewlines"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.input); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGenerateRequestID(t *testing.T) {
	a := generateRequestID()
	b := generateRequestID()
	if len(a) != 16 {
		t.Errorf("request id length = %d, want 16", len(a))
	}
	if a == b {
		t.Error("consecutive request ids should differ")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Error("request 61 within a minute should be rejected")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("a different client should not be affected")
	}
}
