package constant

import "time"

const (
	ContextGuest  = "guest"
	ContextSystem = "system"
)

type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
	ContextKeySessionID contextKey = "session_id"
)

const (
	RoleManager      = "Manager"
	RoleFrontDesk    = "Front Desk"
	RoleHousekeeping = "Housekeeping"
	RoleMaintenance  = "Maintenance"
	RoleSales        = "Sales"
	RoleInspector    = "Inspector"

	DefaultRole = RoleFrontDesk
)

// Roles lists every staff role known to the dashboard.
var Roles = []string{
	RoleManager,
	RoleFrontDesk,
	RoleHousekeeping,
	RoleMaintenance,
	RoleSales,
	RoleInspector,
}

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
	RequestParamSearch  = "search"
	RequestParamRole    = "role"
	RequestParamStatus  = "status"
	RequestParamStart   = "start_date"
	RequestParamEnd     = "end_date"
	RequestParamPreset  = "preset"
)

const (
	RequestParamID = "id"
	// RequestMaxMemory bounds the in-memory part of a multipart form.
	RequestMaxMemory = 10 << 20
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
	MaxValueLimit     = 100
)

const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation           = "23505"
	PqErrorCodeFkViolation               = "23503"
	PqErrorCodeInvalidTextRepresentation = "22P02"
)

const (
	DateFormat     = time.RFC3339
	DateOnlyFormat = time.DateOnly
)

const (
	HoursPerDay = 24
	Percent     = 100
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderAPIKey             = "X-API-Key"
)

const (
	ContentTypeJSON = "application/json"
	FormFile        = "file"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
	ResponseErrorInternal             = "INTERNAL SERVER ERROR"
)

const ServerEnvDevelopment = "development"

// CacheAnalytics prefixes every cached report. Booking writes clear everything under it.
const CacheAnalytics = "analytics"

const (
	Asterix = "*"
	Empty   = ""
)
