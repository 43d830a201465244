package models

import (
	"time"
)

type User struct {
	UserID    int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Prefix    *string    `gorm:"column:prefix" json:"prefix,omitempty"`
	UserFname string     `gorm:"column:user_fname" json:"user_fname"`
	UserLname string     `gorm:"column:user_lname" json:"user_lname"`
	Email     string     `gorm:"column:email;unique" json:"email"`
	Password  string     `gorm:"column:password" json:"-"`
	RoleID    int        `gorm:"column:role_id" json:"role_id"`
	Room      *string    `gorm:"column:room" json:"room,omitempty"`
	Tel       *string    `gorm:"column:tel" json:"tel,omitempty"`
	CreateAt  *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt  *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

type Role struct {
	RoleID   int        `gorm:"primaryKey;column:role_id" json:"role_id"`
	Role     string     `gorm:"column:role" json:"role"`
	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// Permission is a named capability key, e.g. "phd:proposal:drc-review".
type Permission struct {
	PermissionID  int        `gorm:"primaryKey;column:permission_id" json:"permission_id"`
	PermissionKey string     `gorm:"column:permission_key;unique" json:"permission_key"`
	Description   *string    `gorm:"column:description" json:"description,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

type UserPermission struct {
	ID           int        `gorm:"primaryKey;column:id" json:"id"`
	UserID       int        `gorm:"column:user_id" json:"user_id"`
	PermissionID int        `gorm:"column:permission_id" json:"permission_id"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Permission Permission `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

func (Role) TableName() string {
	return "roles"
}

func (Permission) TableName() string {
	return "permissions"
}

func (UserPermission) TableName() string {
	return "user_permissions"
}
