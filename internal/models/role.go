package models

// Role groups permissions and is assigned to users via the user_roles
// join table.
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;uniqueIndex;not null" json:"name"`

	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions"`
}

// Permission is a single named capability.
type Permission struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:64;uniqueIndex;not null" json:"name"`
}

// UserRole is the explicit join record between users and roles. Role
// replacement on update deletes and recreates these rows directly.
type UserRole struct {
	UserID uint `gorm:"primaryKey" json:"user_id"`
	RoleID uint `gorm:"primaryKey" json:"role_id"`
}
