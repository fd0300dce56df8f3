package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/shared/server/middleware"
	"docvault-backend/internal/shared/server/respond"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Handler wires HTTP handlers to the users service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the public account routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.signup)
	rg.POST("/signin", h.signin)
}

// RegisterProtectedRoutes attaches routes that require authentication.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

func (h *Handler) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.Svc.Signup(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, ErrExists):
			respond.Error(c, http.StatusBadRequest, "User already exists")
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to create account")
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"token":   token,
		"message": "Account created successfully.",
	})
}

func (h *Handler) signin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.Svc.Signin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, ErrInvalidCredentials):
			respond.Error(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to sign in")
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"token":   token,
		"message": "Logged in successfully.",
	})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "User not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Failed to load user")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"createdAt": user.CreatedAt,
	})
}
