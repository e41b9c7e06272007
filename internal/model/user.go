package model

import "time"

// Role enumerates the fixed set of user roles. There is no permission
// matrix behind these: routes are gated on the role itself.
type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleAcademyAdmin Role = "academy_admin"
	RoleTeacher      Role = "teacher"
	RoleStudent      Role = "student"
)

// IsStaff reports whether the role may manage content.
func (r Role) IsStaff() bool {
	return r == RoleSuperAdmin || r == RoleAcademyAdmin || r == RoleTeacher
}

// User is any account in the system. AcademyID is nil only for super admins,
// who operate across tenants.
type User struct {
	ID           int       `json:"id"`
	AcademyID    *int      `json:"academy_id,omitempty"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest is the payload for both student and staff logins.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
}

// CreateUserRequest is the payload for creating an account inside an academy.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,alphanum,min=3,max=50"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"required,oneof=academy_admin teacher student"`
}

// UpdateUserRequest is the payload for updating an account.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"omitempty,min=1,max=100"`
	Password string `json:"password" binding:"omitempty,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=academy_admin teacher student"`
}
