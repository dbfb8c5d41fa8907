package utils

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/shared/config"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
)

const (
	CSRFTokenCookie = "csrftoken"
	CSRFTokenHeader = "X-CSRFToken"
	csrfTokenBytes  = 32
)

// SetAuthCookies sets access and refresh token as HttpOnly cookies
func SetAuthCookies(c *gin.Context, cookieConfig config.CookieConfig, accessToken, refreshToken string, accessMaxAge, refreshMaxAge int) {
	setCookie(c, cookieConfig, constants.CookieAccessToken, accessToken, accessMaxAge, true)
	setCookie(c, cookieConfig, constants.CookieRefreshToken, refreshToken, refreshMaxAge, true)
}

// SetAccessTokenCookie sets only the access token cookie (used for refresh)
func SetAccessTokenCookie(c *gin.Context, cookieConfig config.CookieConfig, accessToken string, maxAge int) {
	setCookie(c, cookieConfig, constants.CookieAccessToken, accessToken, maxAge, true)
}

// ClearAuthCookies clears the token and CSRF cookies
func ClearAuthCookies(c *gin.Context, cookieConfig config.CookieConfig) {
	setCookie(c, cookieConfig, constants.CookieAccessToken, "", -1, true)
	setCookie(c, cookieConfig, constants.CookieRefreshToken, "", -1, true)
	setCookie(c, cookieConfig, CSRFTokenCookie, "", -1, false)
}

// GetTokenFromCookie returns the named cookie value or "" when absent.
func GetTokenFromCookie(c *gin.Context, cookieName string) string {
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}

// SetCSRFCookie sets a random token as a cookie readable by frontend
// JavaScript for the double submit cookie pattern.
func SetCSRFCookie(c *gin.Context, cookieConfig config.CookieConfig, maxAge int) {
	setCookie(c, cookieConfig, CSRFTokenCookie, generateCSRFToken(), maxAge, false)
}

func setCookie(c *gin.Context, cfg config.CookieConfig, name, value string, maxAge int, httpOnly bool) {
	c.SetSameSite(parseSameSite(cfg.SameSite))
	c.SetCookie(name, value, maxAge, cfg.Path, cfg.Domain, cfg.Secure, httpOnly)
}

func generateCSRFToken() string {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic("csrf: failed to generate random token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// parseSameSite converts string to http.SameSite
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
