// Package model contain gorm model for recording data to database
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a user can hold
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an applicant registered through an invitation token, or an admin account.
// Applicants are identified by email, admins by username and password.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Email    *string   `gorm:"uniqueIndex" json:"email"`
	Name     string    `gorm:"type:text" json:"name"`
	Username *string   `gorm:"uniqueIndex" json:"username,omitempty"`
	Password string    `json:"-"`
	Role     string    `gorm:"type:text;not null;default:'user'" json:"role"`

	Applications []Application `gorm:"foreignKey:UserID" json:"applications,omitempty"`
	Payments     []Payment     `gorm:"foreignKey:UserID" json:"payments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave keeps email lowercased and trimmed so lookups stay case insensitive.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Email != nil {
		email := NormalizeEmail(*u.Email)
		u.Email = &email
	}
	u.Name = strings.TrimSpace(u.Name)
	return nil
}

// IsAdmin reports whether user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GoogleUserInfo is the payload returned by the Google userinfo endpoint.
type GoogleUserInfo struct {
	GID            string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	FirstName      string `json:"given_name"`
	LastName       string `json:"family_name"`
	ProfilePicture string `json:"picture"`
}

// LoginResponse is returned after a successful sign in.
type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}
