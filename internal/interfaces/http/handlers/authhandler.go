package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/dggcrm/dggcrm/internal/application/user/usecases"
	"github.com/dggcrm/dggcrm/internal/shared/config"
	"github.com/dggcrm/dggcrm/internal/shared/constants"
	"github.com/dggcrm/dggcrm/internal/shared/errors"
	"github.com/dggcrm/dggcrm/internal/shared/logger"
	"github.com/dggcrm/dggcrm/internal/shared/utils"
)

type AuthHandler struct {
	initiateOAuthUC usecases.InitiateOAuthExecutor
	handleOAuthUC   usecases.HandleOAuthCallbackExecutor
	refreshTokenUC  usecases.RefreshTokenExecutor
	logoutUC        usecases.LogoutExecutor
	logger          logger.Interface
	cookieConfig    config.CookieConfig
	jwtConfig       config.JWTConfig
	frontendURL     string
	loginURL        string
}

func NewAuthHandler(
	initiateOAuthUC usecases.InitiateOAuthExecutor,
	handleOAuthUC usecases.HandleOAuthCallbackExecutor,
	refreshTokenUC usecases.RefreshTokenExecutor,
	logoutUC usecases.LogoutExecutor,
	logger logger.Interface,
	cookieConfig config.CookieConfig,
	jwtConfig config.JWTConfig,
	frontendURL string,
	loginURL string,
) *AuthHandler {
	return &AuthHandler{
		initiateOAuthUC: initiateOAuthUC,
		handleOAuthUC:   handleOAuthUC,
		refreshTokenUC:  refreshTokenUC,
		logoutUC:        logoutUC,
		logger:          logger,
		cookieConfig:    cookieConfig,
		jwtConfig:       jwtConfig,
		frontendURL:     frontendURL,
		loginURL:        loginURL,
	}
}

// InitiateOAuth handles GET /auth/oauth/:provider
// @Summary Start a social login
// @Description Stores state and PKCE verifier, then redirects to the provider.
// @Tags auth
// @Param provider path string true "google or discord"
// @Success 307
// @Failure 400 {object} utils.APIResponse
// @Router /auth/oauth/{provider} [get]
func (h *AuthHandler) InitiateOAuth(c *gin.Context) {
	provider := c.Param("provider")

	result, err := h.initiateOAuthUC.Execute(c.Request.Context(), usecases.InitiateOAuthCommand{Provider: provider})
	if err != nil {
		h.logger.Warnw("OAuth initiation failed", "error", err, "provider", provider)
		h.redirectSocialError(c, constants.SocialErrorUnsupported, "")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, result.AuthURL)
}

// HandleOAuthCallback handles GET /auth/oauth/:provider/callback. Every
// failure lands on the frontend login page with a social_error code.
func (h *AuthHandler) HandleOAuthCallback(c *gin.Context) {
	provider := c.Param("provider")

	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warnw("OAuth provider returned error",
			"provider", provider,
			"error_code", errParam,
			"error_description", c.Query("error_description"),
		)
		code := constants.SocialErrorProviderError
		if errParam == string(constants.SocialErrorAccessDenied) {
			code = constants.SocialErrorAccessDenied
		}
		h.redirectSocialError(c, code, "")
		return
	}

	cmd := usecases.HandleOAuthCallbackCommand{
		Provider: provider,
		Code:     c.Query("code"),
		State:    c.Query("state"),
	}
	result, err := h.handleOAuthUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		code, email := constants.SocialErrorProviderError, ""
		if authErr := errors.GetAuthError(err); authErr != nil {
			if authErr.Reason != "" {
				code = constants.SocialErrorCode(authErr.Reason)
			}
			email = authErr.Email
		}
		if errors.ShouldLogAuthError(err) {
			h.logger.Errorw("OAuth callback failed", "error", err, "provider", provider, "reason", code)
		} else {
			h.logger.Infow("social login refused", "provider", provider, "reason", code)
		}
		h.redirectSocialError(c, code, email)
		return
	}

	h.setSessionCookies(c, result.AccessToken, result.RefreshToken)
	h.logger.Infow("social login succeeded", "provider", provider, "user_id", result.User.ID(), "linked", result.Linked)

	c.Redirect(http.StatusFound, h.frontendURL)
}

// RefreshToken handles POST /auth/refresh
// @Summary Rotate the session tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RefreshTokenRequest false "Refresh token when not sent as cookie"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken := utils.GetTokenFromCookie(c, constants.CookieRefreshToken)
	if refreshToken == "" {
		var req RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.Refresh
		}
	}

	if refreshToken == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("refresh token is required"))
		return
	}

	result, err := h.refreshTokenUC.Execute(c.Request.Context(), usecases.RefreshTokenCommand{RefreshToken: refreshToken})
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			h.logger.Warnw("token refresh failed", "error", err)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.setSessionCookies(c, result.AccessToken, result.RefreshToken)

	utils.SuccessResponse(c, http.StatusOK, "token refreshed successfully", RefreshTokenResponse{ExpiresIn: result.ExpiresIn})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.logoutUC.Execute(c.Request.Context(), usecases.LogoutCommand{UserID: utils.GetActorID(c)}); err != nil {
		h.logger.Errorw("logout failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ClearAuthCookies(c, h.cookieConfig)

	utils.SuccessResponse(c, http.StatusOK, "logout successful", nil)
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, accessToken, refreshToken string) {
	accessMaxAge := h.jwtConfig.AccessExpMinutes * 60
	refreshMaxAge := h.jwtConfig.RefreshExpDays * 24 * 60 * 60

	utils.SetAuthCookies(c, h.cookieConfig, accessToken, refreshToken, accessMaxAge, refreshMaxAge)
	utils.SetCSRFCookie(c, h.cookieConfig, refreshMaxAge)
}

func (h *AuthHandler) redirectSocialError(c *gin.Context, code constants.SocialErrorCode, email string) {
	target := h.loginURL + "?social_error=" + url.QueryEscape(string(code))
	if email != "" {
		target += "&email=" + url.QueryEscape(email)
	}
	c.Redirect(http.StatusFound, target)
}
