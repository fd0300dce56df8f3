package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/shared/auth"
)

func protectedRouter(t *testing.T, tokens *auth.TokenManager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(tokens))
	router.GET("/api/v1/pdf/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserIDFromContext(c)})
	})
	return router
}

func TestPreflightBypassesAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(
		CORS([]string{"http://localhost:5173"}),
		Auth(auth.NewTokenManager("test-secret", time.Hour)),
	)
	router.GET("/api/v1/pdf/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/pdf/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight without credentials, got %d", resp.Code)
	}
}

func TestAuthRejectsOptionsWithoutCORS(t *testing.T) {
	router := protectedRouter(t, auth.NewTokenManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/pdf/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when auth runs first, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	router := protectedRouter(t, auth.NewTokenManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pdf/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRejectsRawToken(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := protectedRouter(t, tokens)

	token, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	// Token without the Bearer prefix is not accepted.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pdf/", nil)
	req.Header.Set("Authorization", token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	router := protectedRouter(t, auth.NewTokenManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pdf/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestAuthStoresUserID(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	router := protectedRouter(t, tokens)

	token, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pdf/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); !strings.Contains(body, "user-1") {
		t.Fatalf("expected user id in body, got %s", body)
	}
}
