package dto

import "time"

type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login. AccessToken is empty when
// the account still needs email confirmation.
type AuthResponse struct {
	User                UserResponse `json:"user"`
	AccessToken         string       `json:"access_token,omitempty"`
	PendingVerification bool         `json:"pending_verification"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
