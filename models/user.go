package models

import (
	"time"
)

const (
	RoleTalent = "talent"
	RoleAdmin  = "admin"
)

// User is an account on the platform. Password holds the bcrypt hash,
// never plaintext, and is excluded from JSON.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"type:varchar(16);default:'talent'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
