package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/streakmart/internal/pkg/auth"
)

const (
	// UserIDContextKey is a gin context key for the authenticated user id.
	UserIDContextKey = "userID"
	// UsernameContextKey is a gin context key for the authenticated username.
	UsernameContextKey = "username"

	// AccessCookieName matches the cookie the web client sends back.
	AccessCookieName  = "authToken"
	RefreshCookieName = "refreshToken"

	accessCookieMaxAge  = 15 * 60
	refreshCookieMaxAge = 7 * 24 * 60 * 60
)

// TokenParser verifies an access token and returns its principal.
type TokenParser interface {
	ParseAccessToken(token string) (*pkgAuth.Principal, error)
}

// AuthRequired ensures the request carries a valid access token before the
// handler runs.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractAccessToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		principal, err := parser.ParseAccessToken(token)
		if err != nil {
			if err == pkgAuth.ErrInvalidToken {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(UserIDContextKey, principal.UserID)
		c.Set(UsernameContextKey, principal.Username)
		c.Next()
	}
}

// ExtractAccessToken reads the access token from the auth cookie or a
// Bearer header.
func ExtractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessCookieName); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// SetSessionCookies writes both session cookies to the response.
func SetSessionCookies(c *gin.Context, access, refresh string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookieName, access, accessCookieMaxAge, "/", "", false, true)
	c.SetCookie(RefreshCookieName, refresh, refreshCookieMaxAge, "/", "", false, true)
}

// ClearSessionCookies expires both session cookies.
func ClearSessionCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookieName, "", -1, "/", "", false, true)
	c.SetCookie(RefreshCookieName, "", -1, "/", "", false, true)
}
