package model

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleCandidate Role = "CANDIDATE"
	RoleStaff     Role = "STAFF"
	RoleManager   Role = "MANAGER"
)

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Role      Role           `json:"role" gorm:"not null;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasAnyRole reports whether the user carries one of the given roles.
// A nil user never matches.
func (u *User) HasAnyRole(roles ...Role) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Authorization holds the login credentials for a user. Email is the primary
// lookup key; one row per user, created at registration.
type Authorization struct {
	Email        string    `gorm:"primarykey" json:"email"`
	UserID       uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}
