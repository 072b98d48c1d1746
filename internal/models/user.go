package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
}

// Session is the single active authenticated identity.
type Session struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.User.IsAdmin
}

// for registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IsAdmin  bool   `json:"isAdmin"`
}

// for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

// MessageResponse covers both the ack bodies and the error bodies the backend sends.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type UploadResponse struct {
	Filename string `json:"filename"`
}

// Claims are read from the stored token without verifying the signature; the
// client only needs the expiry.
type Claims struct {
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"isAdmin,omitempty"`
	jwt.RegisteredClaims
}
