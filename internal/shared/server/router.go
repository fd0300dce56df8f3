package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/documents"
	"docvault-backend/internal/shared/auth"
	"docvault-backend/internal/shared/config"
	"docvault-backend/internal/shared/metrics"
	"docvault-backend/internal/shared/server/middleware"
	"docvault-backend/internal/shared/server/respond"
	"docvault-backend/internal/users"
)

// Signup and signin are throttled per client IP; everything behind auth is
// throttled per user.
var (
	authRateRule = middleware.RateLimitRule{Rate: 1, Burst: 20}
	userRateRule = middleware.RateLimitRule{Rate: 10, Burst: 50}
)

// RouterDeps carries the wired handlers and shared state the router needs.
type RouterDeps struct {
	Config          config.Config
	Tokens          *auth.TokenManager
	UsersHandler    *users.Handler
	DocumentHandler *documents.Handler
	// StaticUploadDir, when non-empty, is served under /uploads so locally
	// stored files are reachable at their file URLs.
	StaticUploadDir string
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	if deps.StaticUploadDir != "" {
		r.Static("/uploads", deps.StaticUploadDir)
	}

	r.GET("/metrics", metrics.Handler())

	limiter := middleware.NewRateLimiter(nil)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	user := api.Group("/user")
	user.Use(middleware.RateLimit(limiter, authRateRule))
	deps.UsersHandler.RegisterRoutes(user)

	protected := api.Group("")
	protected.Use(
		middleware.Auth(deps.Tokens),
		middleware.RateLimit(limiter, userRateRule),
	)
	deps.UsersHandler.RegisterProtectedRoutes(protected.Group("/user"))
	deps.DocumentHandler.RegisterRoutes(protected.Group("/pdf"))

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
