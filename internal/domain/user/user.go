package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already in use")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Company      string    `json:"company"`
	Role         string    `json:"role"`
	Bio          string    `json:"bio"`
	Timezone     string    `json:"timezone"`
	Language     string    `json:"language"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SignUpRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is a partial update: nil fields keep their stored
// value. It binds from JSON or from a multipart form; the form variant may
// carry an avatar file, which the handler stores separately.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" form:"firstName"`
	LastName  *string `json:"lastName" form:"lastName"`
	Email     *string `json:"email" form:"email" binding:"omitempty,email"`
	Company   *string `json:"company" form:"company"`
	Role      *string `json:"role" form:"role"`
	Bio       *string `json:"bio" form:"bio"`
	Timezone  *string `json:"timezone" form:"timezone"`
	Language  *string `json:"language" form:"language"`
}

// ApplyTo merges the provided fields onto u, leaving nil fields untouched.
func (r UpdateProfileRequest) ApplyTo(u *User) {
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Company != nil {
		u.Company = *r.Company
	}
	if r.Role != nil {
		u.Role = *r.Role
	}
	if r.Bio != nil {
		u.Bio = *r.Bio
	}
	if r.Timezone != nil {
		u.Timezone = *r.Timezone
	}
	if r.Language != nil {
		u.Language = *r.Language
	}
}
