package constants

import "time"

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"
	// ContextKeyUsername is the gin context key holding the authenticated username.
	ContextKeyUsername = "username"
	// ContextKeyEmail is the gin context key holding the authenticated email.
	ContextKeyEmail = "email"

	MinUsernameLength = 3
	MinPasswordLength = 6

	// TokenTTL is how long an issued bearer token stays valid.
	TokenTTL = 24 * time.Hour

	// UploadFormField is the multipart field carrying an uploaded image.
	UploadFormField = "image"
	// UploadURLPrefix is the public path under which uploads are served.
	UploadURLPrefix = "/uploads"
	// DefaultMaxUploadBytes caps a single image upload.
	DefaultMaxUploadBytes = 5 << 20

	MaxAIGeneratedTasks = 20
)
