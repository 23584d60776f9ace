package models

import "time"

// User represents an application account. PasswordHash is write-only:
// it never appears in JSON responses or in signed token payloads.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;not null" json:"username"`
	Email        string    `gorm:"size:128;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreateTime   time.Time `json:"create_time"`
	DNI          string    `gorm:"column:dni;size:32" json:"dni"`

	Roles []Role `gorm:"many2many:user_roles" json:"roles"`
}
