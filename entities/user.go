package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Timestamp struct {
	CreatedAt time.Time      `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamp" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Role struct {
	ID   uint   `gorm:"primary_key" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `json:"-"`
	RoleID   uint      `json:"role_id"`

	Role *Role `gorm:"foreignKey:RoleID"`
	Timestamp
}
