package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/streakmart/internal/domain/errors"
	"github.com/polkiloo/streakmart/internal/server/http/dto"
	"github.com/polkiloo/streakmart/internal/server/http/middleware"
)

// AuthHandler processes registration, login, and session maintenance.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/user/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request body"})
		return
	}

	usr, err := h.facade.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "username and password are required"})
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.JSON(http.StatusConflict, dto.MessageResponse{Message: "username already taken"})
		default:
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "internal error"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "user registered",
		User:    toUserResponse(usr),
	})
}

// Login handles POST /api/user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "invalid request body"})
		return
	}

	usr, tokens, err := h.facade.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "invalid username or password"})
		default:
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "internal error"})
		}
		return
	}

	middleware.SetSessionCookies(c, tokens.Access, tokens.Refresh)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "login successful",
		User:    toUserResponse(usr),
	})
}

// Refresh handles POST /api/user/refresh. The presented refresh token is
// rotated; both cookies are replaced.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, err := c.Cookie(middleware.RefreshCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "refresh token missing"})
		return
	}

	usr, tokens, err := h.facade.Refresh(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidRefresh):
			middleware.ClearSessionCookies(c)
			c.JSON(http.StatusForbidden, dto.MessageResponse{Message: "invalid refresh token"})
		case errors.Is(err, domainErrors.ErrNotFound):
			middleware.ClearSessionCookies(c)
			c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "internal error"})
		}
		return
	}

	middleware.SetSessionCookies(c, tokens.Access, tokens.Refresh)
	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "token refreshed",
		User:    toUserResponse(usr),
	})
}

// Logout handles POST /api/user/logout. Always succeeds and expires the
// session cookies even when no valid session exists.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.RefreshCookieName)

	if err := h.facade.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "internal error"})
		return
	}

	middleware.ClearSessionCookies(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}

// Check handles GET /api/user/check. The response is always 200; session
// validity is reported in the body so the client can render either state.
func (h *AuthHandler) Check(c *gin.Context) {
	token := middleware.ExtractAccessToken(c)
	if token == "" {
		c.JSON(http.StatusOK, dto.CheckAuthResponse{IsAuthenticated: false, Message: "no session"})
		return
	}

	usr, err := h.facade.CheckSession(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusOK, dto.CheckAuthResponse{IsAuthenticated: false, Message: "session expired"})
		return
	}

	resp := toUserResponse(usr)
	c.JSON(http.StatusOK, dto.CheckAuthResponse{IsAuthenticated: true, User: &resp})
}
