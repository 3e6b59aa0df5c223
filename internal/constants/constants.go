package constants

// Roles carried in session tokens.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// Context keys set by the auth middleware.
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

// MinPasswordLength is enforced on registration.
const MinPasswordLength = 6

// Upload limits.
const (
	MaxImageSize          = 5 << 20  // profile images
	MaxAttachmentSize     = 10 << 20 // task attachments
	MaxSubmissionFileSize = 50 << 20 // submission files
	MaxSubmissionFiles    = 10
)

// Pagination bounds.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
