package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		realIP     string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"remote addr host", "", "", "10.0.0.1:5000", "10.0.0.1"},
		{"remote addr without port", "", "", "10.0.0.1", "10.0.0.1"},
		{"x-real-ip ignored", "203.0.113.7", "", "10.0.0.1:5000", "10.0.0.1"},
		{"forwarded-for ignored", "", "198.51.100.1, 10.0.0.2", "10.0.0.1:5000", "10.0.0.1"},
		{"empty remote addr", "", "", "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientIP_FromContext(t *testing.T) {
	r := httptest.NewRequest("POST", "/", nil)
	r.RemoteAddr = "10.0.0.1:5000"
	r = r.WithContext(WithClientIP(r.Context(), "198.51.100.4"))

	assert.Equal(t, "198.51.100.4", ClientIP(r))
}

func TestGetRealIP_TrustedProxies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		trusted []string
		want    string
	}{
		{"untrusted peer keeps remote addr", nil, "203.0.113.9"},
		{"other proxy trusted", []string{"10.0.0.0/8"}, "203.0.113.9"},
		{"trusted proxy forwards client", []string{"203.0.113.9"}, "1.2.3.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.RemoteIPHeaders = []string{"X-Real-IP", "X-Forwarded-For"}
			require.NoError(t, router.SetTrustedProxies(tt.trusted))

			var got string
			router.GET("/", func(c *gin.Context) { got = GetRealIP(c) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "203.0.113.9:4000"
			req.Header.Set("X-Real-IP", "1.2.3.4")
			router.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}
