package dto

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse describes the logged in owner.
type SessionResponse struct {
	Username string `json:"username"`
}
