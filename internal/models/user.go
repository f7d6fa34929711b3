package models

import "time"

// User represents an operator account.
type User struct {
	ID                   string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username             string     `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email                string     `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password             string     `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Role                 string     `json:"role" gorm:"type:varchar(20);default:user" validate:"omitempty,oneof=user admin"`
	ResetPasswordToken   *string    `json:"-" gorm:"type:varchar(64);index"`
	ResetPasswordExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
