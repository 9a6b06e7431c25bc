package domain

import (
	"time"

	rdomain "github.com/ridloal/hidayah-backoffice/internal/resource/domain"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOperator
}

type User struct {
	ID           rdomain.ID `json:"id" gorm:"primaryKey"`
	Nama         string     `json:"nama" gorm:"size:150;not null"`
	Username     string     `json:"username" gorm:"size:50;not null;uniqueIndex"`
	Email        string     `json:"email,omitempty" gorm:"size:150"`
	Phone        string     `json:"phone,omitempty" gorm:"size:30"`
	Role         Role       `json:"role" gorm:"size:20;not null"`
	PasswordHash string     `json:"-" gorm:"not null"` // Jangan kirim password hash ke client
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string { return "users" }

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries no token: the back-office has no authentication layer.
type LoginResponse struct {
	User User `json:"user"`
}

// DashboardCounts maps a menu key to the number of records behind it.
type DashboardCounts map[MenuKey]int64
