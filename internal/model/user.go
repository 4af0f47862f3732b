package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role is the canonical user role. The two values below are the only ones
// accepted anywhere; authorization always goes through IsAdmin.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleAttendant Role = "attendant"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleAttendant
}

// User represents a lab staff account
type User struct {
	BaseModel
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FirstName string `gorm:"type:varchar(100)" json:"first_name" validate:"required"`
	LastName  string `gorm:"type:varchar(100)" json:"last_name" validate:"required"`
	Role      Role   `gorm:"type:varchar(20);index;default:'attendant'" json:"role" validate:"required,oneof=admin attendant"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name the way reports render users.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsAdmin is the single authorization predicate for admin-only actions.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	JoinDate  string    `json:"join_date"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Role:      u.Role,
		IsActive:  u.IsActive,
		JoinDate:  u.CreatedAt.Format("2006-01-02"),
	}
}
