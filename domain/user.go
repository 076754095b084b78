package domain

import "time"

// Role controls what a staff member may do. Admins and managers act on
// every department; kitchen and service staff only on their own.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleKitchen Role = "kitchen"
	RoleService Role = "service"
)

// User represents an authenticated staff member.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	JobPosition  string    `json:"job_position,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanModify reports whether the user may toggle tasks of the department.
func (u *User) CanModify(dept Department) bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case RoleAdmin, RoleManager:
		return true
	case RoleKitchen:
		return dept == DepartmentKitchen
	case RoleService:
		return dept == DepartmentService
	default:
		return false
	}
}

// Managerial reports whether the role may administer tasks, rules and videos.
func (r Role) Managerial() bool {
	return r == RoleAdmin || r == RoleManager
}
