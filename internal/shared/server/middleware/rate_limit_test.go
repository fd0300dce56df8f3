package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterAllowRefillsOverTime(t *testing.T) {
	current := time.Unix(0, 0)
	limiter := NewRateLimiter(func() time.Time { return current })
	rule := RateLimitRule{Rate: 1, Burst: 2}

	if ok, _ := limiter.Allow("k", rule); !ok {
		t.Fatal("first request should pass")
	}
	if ok, _ := limiter.Allow("k", rule); !ok {
		t.Fatal("second request should pass within burst")
	}
	ok, retryAfter := limiter.Allow("k", rule)
	if ok {
		t.Fatal("third request should be limited")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %s", retryAfter)
	}

	current = current.Add(time.Second)
	if ok, _ := limiter.Allow("k", rule); !ok {
		t.Fatal("request after refill should pass")
	}
}

func TestRateLimiterIsolatesKeys(t *testing.T) {
	current := time.Unix(0, 0)
	limiter := NewRateLimiter(func() time.Time { return current })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("a", rule); !ok {
		t.Fatal("key a should pass")
	}
	if ok, _ := limiter.Allow("b", rule); !ok {
		t.Fatal("key b should pass despite a being drained")
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	gin.SetMode(gin.TestMode)

	current := time.Unix(0, 0)
	limiter := NewRateLimiter(func() time.Time { return current })

	router := gin.New()
	router.Use(RateLimit(limiter, RateLimitRule{Rate: 1, Burst: 1}))
	router.POST("/api/v1/user/signin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/v1/user/signin", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/v1/user/signin", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}
