package models

import "gorm.io/gorm"

// Roles assignable to a user account.
const (
	RolePublic = "public"
	RoleStaff  = "staff"
)

// User represents a registered account, either a regular renter or staff.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash; empty for Google-only accounts
	GoogleID   string `json:"-" gorm:"type:varchar(100)"`
	Role       string `json:"role" gorm:"type:varchar(20);default:public" validate:"omitempty,oneof=public staff"`
	gorm.Model `json:"-"`
}
