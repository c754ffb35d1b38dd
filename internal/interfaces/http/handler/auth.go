package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/morabaat/backend/internal/application/identity"
	"github.com/morabaat/backend/internal/interfaces/http/middleware"
)

// AuthHandler serves registration, login and session management
type AuthHandler struct {
	BaseHandler
	auth  *identityapp.AuthService
	users *identityapp.UserService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(auth *identityapp.AuthService, users *identityapp.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// RegisterRoutes mounts the auth endpoints
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
}

// RegisterProtectedRoutes mounts the endpoints that need a valid session
func (h *AuthHandler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.GET("/me", h.Me)
	g.POST("/logout", h.Logout)
	g.POST("/change-password", h.ChangePassword)
}

// Register creates a new account and signs it in
func (h *AuthHandler) Register(c *gin.Context) {
	var input identityapp.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	result, err := h.auth.Register(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Login exchanges credentials for a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var input identityapp.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	result, err := h.auth.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh rotates a refresh token into a new pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input identityapp.RefreshTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	result, err := h.auth.Refresh(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

type logoutRequest struct {
	AllSessions bool `json:"all_sessions"`
}

// Logout revokes the presented access token; with all_sessions it ends
// every session of the caller.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req logoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	claims := currentClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Missing session")
		return
	}
	input := identityapp.LogoutInput{
		UserID:      middleware.CurrentUserID(c),
		AccessJTI:   claims.ID,
		AccessTTL:   claims.GetRemainingTTL(),
		AllSessions: req.AllSessions,
	}
	if err := h.auth.Logout(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ChangePassword verifies the old password and sets a new one. All other
// sessions of the user are terminated.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var input identityapp.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	input.UserID = middleware.CurrentUserID(c)
	if err := h.auth.ChangePassword(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Me returns the caller's account
func (h *AuthHandler) Me(c *gin.Context) {
	info, err := h.users.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}
