package constants

// SocialErrorCode is the machine-readable reason appended to the login page
// redirect when a social login fails.
type SocialErrorCode string

const (
	SocialErrorNoEmail       SocialErrorCode = "no_email"
	SocialErrorNoUser        SocialErrorCode = "no_user"
	SocialErrorInvalidState  SocialErrorCode = "invalid_state"
	SocialErrorMissingCode   SocialErrorCode = "missing_code"
	SocialErrorAccessDenied  SocialErrorCode = "access_denied"
	SocialErrorProviderError SocialErrorCode = "provider_error"
	SocialErrorUnsupported   SocialErrorCode = "unsupported_provider"
)

// SocialErrorMessages maps reason codes to messages for logs and API clients
var SocialErrorMessages = map[SocialErrorCode]string{
	SocialErrorNoEmail:       "The identity provider did not return an email address.",
	SocialErrorNoUser:        "No account exists for this email. Ask an organizer for access.",
	SocialErrorInvalidState:  "Login session expired or is invalid. Please try again.",
	SocialErrorMissingCode:   "Authorization code is missing. Please try logging in again.",
	SocialErrorAccessDenied:  "You denied the authorization request.",
	SocialErrorProviderError: "The identity provider returned an error. Please try again later.",
	SocialErrorUnsupported:   "This login provider is not supported.",
}

// GetSocialErrorMessage returns a user-facing message for the code
func GetSocialErrorMessage(code SocialErrorCode) string {
	if msg, ok := SocialErrorMessages[code]; ok {
		return msg
	}
	return "An unexpected error occurred during authentication. Please try again."
}
