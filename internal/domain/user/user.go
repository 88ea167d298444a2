package user

import "errors"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"` // never expose the credential in JSON
	Role     string `json:"role"`
}

// returned when a login attempt matches no stored user.
var ErrInvalidCredentials = errors.New("invalid credentials")

// returned when a signup reuses an existing email (case-sensitive match).
var ErrEmailTaken = errors.New("email already in use")

var ErrNotFound = errors.New("user not found")

type SignUpRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=80"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
