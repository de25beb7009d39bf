package model

import (
	"time"
)

// UserModel mirrors the 'users' table created by the goose migrations.
type UserModel struct {
	ID                int64      `gorm:"primaryKey;autoIncrement"`
	Username          string     `gorm:"type:varchar(100);not null;uniqueIndex:uq_users_username"`
	PasswordHash      string     `gorm:"type:varchar(255);not null"`
	Email             string     `gorm:"type:varchar(255);not null"`
	FirstName         string     `gorm:"type:varchar(100);not null"`
	LastName          string     `gorm:"type:varchar(100);not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	PasswordChangedAt *time.Time `gorm:"column:last_password_change"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
