package models

import (
	"strings"

	"gorm.io/gorm"
)

type User struct {
	Username       string  `gorm:"primaryKey;type:varchar(100)" json:"username"`
	Role           string  `gorm:"type:varchar(10);not null" json:"role"`
	LastPlayedDate *string `gorm:"type:varchar(10)" json:"lastPlayedDate"`
}

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// ReservedAdminUsername is the canonical super-administrator account name.
// The name is compared case-insensitively at every application boundary.
const ReservedAdminUsername = "Admin"

// IsReservedUsername reports whether name collides with the super-admin
// account, regardless of case.
func IsReservedUsername(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), ReservedAdminUsername)
}

// BeforeSave hook for validation
func (u *User) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(u.Username) == "" {
		return gorm.ErrInvalidData
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return gorm.ErrInvalidData
	}
	// The reserved account can never be demoted.
	if IsReservedUsername(u.Username) && u.Role != RoleAdmin {
		return gorm.ErrInvalidData
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
