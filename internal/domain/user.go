package domain

import "time"

// UserRole user role
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// User account entity
type User struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"column:email;size:190;not null;uniqueIndex" json:"email"`
	Phone      string    `gorm:"column:phone;size:30" json:"phone,omitempty"`
	Password   string    `gorm:"column:password;size:255;not null" json:"-"`
	Name       string    `gorm:"column:name;size:100;not null" json:"name"`
	Role       UserRole  `gorm:"column:role;size:20;default:USER" json:"role"`
	IsVerified bool      `gorm:"column:is_verified;default:false" json:"is_verified"`
	City       string    `gorm:"column:city;size:100" json:"city,omitempty"`
	Region     string    `gorm:"column:region;size:100" json:"region,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RegisterRequest signup payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,max=30"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,max=100"`
	City     string `json:"city" binding:"omitempty,max=100"`
	Region   string `json:"region" binding:"omitempty,max=100"`
}

// LoginRequest login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse login/register response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
