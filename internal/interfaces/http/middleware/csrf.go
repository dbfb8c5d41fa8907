package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

// csrfExactPaths are unauthenticated endpoints with no cookie session to
// protect.
var csrfExactPaths = map[string]struct{}{
	"/api/auth/refresh": {},
	// The CSRF cookie may have expired alongside the access token.
	"/api/auth/logout":  {},
}

// csrfPrefixPaths covers the OAuth redirect flow.
var csrfPrefixPaths = []string{
	"/api/auth/oauth/",
}

// CSRF validates the double submit cookie: for mutating requests the
// csrftoken cookie must equal the X-CSRFToken header. Requests authenticated
// by a Bearer header carry no ambient credentials and are skipped.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip safe HTTP methods
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		if c.GetHeader(constants.HeaderAuthorization) != "" && !hasSessionCookie(c) {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if _, ok := csrfExactPaths[path]; ok {
			c.Next()
			return
		}
		for _, prefix := range csrfPrefixPaths {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		cookieToken, err := c.Cookie(utils.CSRFTokenCookie)
		if err != nil || cookieToken == "" {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("missing CSRF token"))
			c.Abort()
			return
		}

		headerToken := c.GetHeader(utils.CSRFTokenHeader)
		if headerToken == "" {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("missing CSRF token header"))
			c.Abort()
			return
		}

		// Constant-time comparison to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(headerToken)) != 1 {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("invalid CSRF token"))
			c.Abort()
			return
		}

		c.Next()
	}
}

// isSafeMethod returns true for HTTP methods that do not mutate state.
func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

func hasSessionCookie(c *gin.Context) bool {
	return utils.GetTokenFromCookie(c, constants.CookieAccessToken) != "" ||
		utils.GetTokenFromCookie(c, constants.CookieRefreshToken) != ""
}
