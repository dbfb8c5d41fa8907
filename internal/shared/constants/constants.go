package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Cookie names
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"

	// Database drivers
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// Defaults
	DefaultTagColor       = "#9e9e9e"
	DefaultTicketPriority = 3

	// Acceptance rate reported for a ticket type when no decided asks exist
	AcceptanceRateNeverOffered = -1.0

	// Display name used for audit and comment rows without an actor
	SystemActorDisplay = "System"
)
