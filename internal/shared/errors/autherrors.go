package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeTokenExpired    ErrorType = "token_expired"
	ErrorTypeTokenInvalid    ErrorType = "token_invalid"
	ErrorTypeOAuthError      ErrorType = "oauth_error"
	ErrorTypeLoginNotAllowed ErrorType = "login_not_allowed"
)

// AuthError represents authentication failures. Reason carries a
// machine-readable code used when redirecting back to the login page.
type AuthError struct {
	*AppError
	Reason string
	Email  string
	// ShouldLog is false for expected failures such as unknown accounts
	ShouldLog bool
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to reach the AppError
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewTokenExpiredError creates an error for expired tokens
func NewTokenExpiredError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: fmt.Sprintf("%s has expired", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
	}
}

// NewTokenInvalidError creates an error for invalid tokens
func NewTokenInvalidError(tokenType string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenInvalid,
			Message: fmt.Sprintf("Invalid %s", tokenType),
			Code:    http.StatusUnauthorized,
			Details: "Token is invalid or has been revoked",
		},
		ShouldLog: true,
	}
}

// NewOAuthError creates an error for provider-side failures
func NewOAuthError(provider, reason string, details ...string) *AuthError {
	detail := fmt.Sprintf("OAuth authentication failed: %s", reason)
	if len(details) > 0 {
		detail = details[0]
	}
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeOAuthError,
			Message: fmt.Sprintf("OAuth authentication failed with %s", provider),
			Code:    http.StatusBadGateway,
			Details: detail,
		},
		Reason:    reason,
		ShouldLog: true,
	}
}

// NewLoginNotAllowedError is returned when a provider identity does not map
// to an existing account. Signup is never performed.
func NewLoginNotAllowedError(reason, email string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeLoginNotAllowed,
			Message: "No account matches this login",
			Code:    http.StatusForbidden,
		},
		Reason: reason,
		Email:  email,
	}
}

// GetAuthError extracts AuthError from an error chain
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError returns true if the authentication error should be logged
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}
