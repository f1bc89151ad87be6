package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used for stored password hashes
const PasswordCost = 10

// Role classifies a caller for access to admin-only operations
type Role = string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Roles lists every recognized role
var Roles = []Role{RoleUser, RoleAdmin}

// IsValidRole reports whether role is one of the recognized roles
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User is a registered account. Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"not null;default:'user'" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// HashPassword replaces the plaintext Password with its bcrypt hash
func (u *User) HashPassword() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), PasswordCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword compares a plaintext candidate against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
