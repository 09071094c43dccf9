package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                string     `gorm:"column:name;size:50;not null"`
	Email               string     `gorm:"column:email;size:255;uniqueIndex;not null"`
	Password            string     `gorm:"column:password;not null"`
	Phone               string     `gorm:"column:phone;size:20"`
	Address             string     `gorm:"column:address;size:500"`
	Role                string     `gorm:"column:role;size:10;default:user;not null;index"`
	IsActive            bool       `gorm:"column:is_active;not null;index"`
	LastLogin           *time.Time `gorm:"column:last_login"`
	TokenVersion        int        `gorm:"column:token_version;default:1;not null"`
	RefreshTokenHash    string     `gorm:"column:refresh_token_hash;default:null"`
	RefreshTokenExpires *time.Time `gorm:"column:refresh_token_expires_at;default:null;index:idx_users_token_cleanup,where:refresh_token_expires_at IS NOT NULL"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
