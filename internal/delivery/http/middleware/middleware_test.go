package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-match-backend/config"
	"go-match-backend/internal/delivery/http/middleware"
	"go-match-backend/internal/domain"
	"go-match-backend/internal/scoring"
	"go-match-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret-with-enough-length-123"

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func authRouter() *gin.Engine {
	r := gin.New()
	cfg := &config.Config{SupabaseJWTSecret: testSecret}
	r.GET("/me", middleware.AuthMiddleware(nil, cfg), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(string(domain.KeyUserID))+"|"+c.GetString(string(domain.KeyUserRole)))
	})
	r.GET("/employers", middleware.AuthMiddleware(nil, cfg), middleware.RequireRole(middleware.RoleEmployer), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := authRouter()
	exp := time.Now().Add(time.Hour).Unix()

	t.Run("Should reject requests without a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should read the role from app_metadata", func(t *testing.T) {
		tok := signed(t, jwt.MapClaims{
			"sub": "u1", "exp": exp, "role": "authenticated",
			"app_metadata": map[string]interface{}{"role": "employer"},
		})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1|employer", w.Body.String())
	})

	t.Run("Should default to the candidate role", func(t *testing.T) {
		tok := signed(t, jwt.MapClaims{"sub": "u2", "exp": exp, "role": "authenticated"})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: tok})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "u2|candidate", w.Body.String())
	})

	t.Run("Should reject expired tokens", func(t *testing.T) {
		tok := signed(t, jwt.MapClaims{"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix()})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Should forbid candidates on employer routes", func(t *testing.T) {
		tok := signed(t, jwt.MapClaims{"sub": "u2", "exp": exp})
		req := httptest.NewRequest(http.MethodGet, "/employers", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"invalid argument", scoring.ErrInvalidArgument, http.StatusBadRequest},
		{"empty input", scoring.ErrEmptyInput, http.StatusNotFound},
		{"dimension mismatch", scoring.ErrDimensionMismatch, http.StatusUnprocessableEntity},
		{"job closed", scoring.ErrJobClosed, http.StatusConflict},
		{"unavailable", domain.ErrUnavailable, http.StatusServiceUnavailable},
		{"app error", apperror.New(http.StatusForbidden, "no", nil), http.StatusForbidden},
		{"wrapped job closed", fmt.Errorf("rank job 7: %w", scoring.ErrJobClosed), http.StatusConflict},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run("Should map "+tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(middleware.ErrorHandler())
			r.GET("/", func(c *gin.Context) { _ = c.Error(tc.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tc.code, w.Code)
		})
	}

	t.Run("Should keep the cause on mapped errors", func(t *testing.T) {
		err := fmt.Errorf("pair c1/7: %w", scoring.ErrDimensionMismatch)
		appErr := middleware.MatchError(err, "Resource not found")
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
		assert.ErrorIs(t, appErr, scoring.ErrDimensionMismatch)
	})

	t.Run("Should use the given not-found message", func(t *testing.T) {
		appErr := middleware.MatchError(domain.ErrNotFound, "Job not found")
		assert.Equal(t, http.StatusNotFound, appErr.Code)
		assert.Equal(t, "Job not found", appErr.Message)
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("Should generate an ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
		assert.NoError(t, err)
	})

	t.Run("Should keep a valid caller ID", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, id, w.Header().Get("X-Request-ID"))
	})
}

func TestRateLimiterInMemory(t *testing.T) {
	limiter := middleware.NewRateLimiter(nil)
	r := gin.New()
	r.GET("/", limiter.Middleware(middleware.ScoringRateLimitConfig(2)), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORSMiddleware("https://app.example.com"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("Should echo an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should refuse preflight from unknown origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
