package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/authkeeper/internal/domain/errors"
	"github.com/polkiloo/authkeeper/internal/server/http/dto"
	"github.com/polkiloo/authkeeper/internal/server/http/middleware"
)

const (
	registeredMessage = "user registered successfully"
	loginMessage      = "login successful"
	logoutMessage     = "logged out"
)

// AuthHandler processes registration, login and token checks.
type AuthHandler struct {
	facade AuthFacade
	events EventRecorder
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, events EventRecorder) *AuthHandler {
	return &AuthHandler{facade: facade, events: events}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, "register", domainErrors.ErrInvalidInput, "")
		return
	}
	profile, err := req.Profile()
	if err != nil {
		h.fail(c, "register", err, "")
		return
	}

	if _, err := h.facade.Register(c.Request.Context(), req.Email, req.Password, profile); err != nil {
		h.fail(c, "register", err, "error registering user: ")
		return
	}
	h.events.AuthEvent("register", nil)
	c.String(http.StatusCreated, registeredMessage)
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, "login", domainErrors.ErrInvalidInput, "")
		return
	}

	token, err := h.facade.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, "login", err, "error logging in: ")
		return
	}
	h.events.AuthEvent("login", nil)
	c.JSON(http.StatusOK, dto.LoginResponse{Message: loginMessage, Token: token})
}

// CheckTokenValidity handles GET /api/checkTokenValidity behind VerifyToken.
func (h *AuthHandler) CheckTokenValidity(c *gin.Context) {
	h.events.AuthEvent("check_token", nil)
	c.JSON(http.StatusOK, dto.TokenValidityResponse{Valid: true})
}

// Logout handles POST /api/logout behind VerifyToken.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		h.fail(c, "logout", domainErrors.ErrTokenMissing, "")
		return
	}
	if err := h.facade.Revoke(c.Request.Context(), claims); err != nil {
		h.fail(c, "logout", err, "error logging out: ")
		return
	}
	h.events.AuthEvent("logout", nil)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: logoutMessage})
}

func (h *AuthHandler) fail(c *gin.Context, event string, err error, prefix string) {
	h.events.AuthEvent(event, err)
	writeError(c, err, prefix)
}
