package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func signToken(t *testing.T, claims Claims, method jwt.SigningMethod, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func claimsFor(subject, role string, expiresIn time.Duration) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
}

func newAuthRouter(logs *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.New(slog.NewJSONHandler(logs, nil))))
	r.GET("/whoami", AuthMiddleware(testSecret), func(c *gin.Context) {
		userID, _ := GetUserIDFromContext(c)
		role, _ := GetUserRoleFromContext(c)
		ctxUserID, _ := UserIDFromCtx(c.Request.Context())
		GetLoggerFromContext(c).Info("handled")
		c.JSON(http.StatusOK, gin.H{"user": userID, "role": role, "ctxUser": ctxUserID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantMsg: "Authorization header required"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantMsg: "Authorization header format must be Bearer {token}"},
		{
			name:       "expired",
			header:     "Bearer " + signToken(t, claimsFor("kam-1", "KAM", -time.Minute), jwt.SigningMethodHS256, testSecret),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Token has expired",
		},
		{
			name:       "wrong secret",
			header:     "Bearer " + signToken(t, claimsFor("kam-1", "KAM", time.Hour), jwt.SigningMethodHS256, "another-secret"),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid token",
		},
		{
			name:       "no subject",
			header:     "Bearer " + signToken(t, claimsFor("", "KAM", time.Hour), jwt.SigningMethodHS256, testSecret),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "Invalid token claims",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter(&logs).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestAuthMiddleware_StoresIdentity(t *testing.T) {
	var logs bytes.Buffer
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claimsFor("mgr-1", "MANAGER", time.Hour), jwt.SigningMethodHS256, testSecret))
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	newAuthRouter(&logs).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "mgr-1", body["user"])
	assert.Equal(t, "MANAGER", body["role"])
	assert.Equal(t, "mgr-1", body["ctxUser"])

	// Both the handler line and the completion line carry the request id and the user.
	lines := bytes.Split(bytes.TrimSpace(logs.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		assert.Equal(t, "req-123", entry["request_id"])
		assert.Equal(t, "mgr-1", entry["user_id"])
	}
}

func TestStructuredLoggingMiddleware_GeneratesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.New(slog.NewJSONHandler(&logs, nil))))
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Contains(t, logs.String(), `"status":200`)
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), GetLoggerFromCtx(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiterInstance, err := NewMemoryLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/limited", RateLimit(limiterInstance), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	_, err = NewMemoryLimiter("lots")
	assert.Error(t, err)
}
