package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORSMiddleware(t *testing.T) {
	mw := NewCORSMiddleware([]string{"https://*.example.com"})
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name   string
		origin string
		allow  bool
	}{
		{"matching subdomain", "https://app.example.com", true},
		{"other origin", "https://evil.com", false},
		{"no origin", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if tc.allow && got != tc.origin {
				t.Errorf("Allow-Origin => %q, want %q", got, tc.origin)
			}
			if !tc.allow && got != "" {
				t.Errorf("Allow-Origin => %q, want empty", got)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	mw := NewCORSMiddleware([]string{"https://app.example.com"})
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("preflight reached the next handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/v1/orgs", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight => %d, want %d", rec.Code, http.StatusNoContent)
	}
}
