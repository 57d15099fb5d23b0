// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role represents a warehouse role
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDirector Role = "director"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDirector, RoleOperator, RoleViewer:
		return true
	}
	return false
}

// CanChangeWaveStatus reports whether the role may drive wave transitions
func (r Role) CanChangeWaveStatus() bool {
	return r == RoleAdmin || r == RoleDirector || r == RoleOperator
}

// User represents a warehouse staff account
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"uniqueIndex;not null;size:100" json:"username"`
	Password    string         `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	FullName    string         `gorm:"size:200" json:"full_name"`
	Role        Role           `gorm:"not null;default:'viewer';size:20" json:"role"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	return nil
}

// GetDisplayName returns the full name or the username as fallback
func (u *User) GetDisplayName() string {
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	return u.Username
}
