package constants

import "time"

// Session and context keys
const (
	SessionCookieName   = "board_session"
	ContextKeyUsername  = "username"
	ContextKeyTask      = "task"
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-ID"
)

// Auth
const (
	MinPasswordLength = 8
	SessionMaxAge     = 86400 * 7 // 7 days
)

// Cache
const (
	TaskBoardCacheKey    = "tasks:board"
	TaskBoardCacheGenKey = "tasks:board:gen"
	DefaultTaskCacheTTL  = 5 * time.Minute
)

// Validation
const (
	MaxTitleLength = 255
)
