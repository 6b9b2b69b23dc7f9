package models

import "time"

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Name      string    `json:"name" gorm:"size:120;not null"`
	Password  string    `json:"-" gorm:"not null"`           // bcrypt hash
	Role      string    `json:"role" gorm:"size:20;not null"` // "employee" | "admin"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
