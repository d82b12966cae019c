package models

import "time"

type User struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Email     string    `gorm:"column:email;uniqueIndex;size:255" json:"email"`
	Password  string    `gorm:"column:password_hash" json:"-"`
	Role      string    `gorm:"column:role;default:officer" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string { return "users" }
