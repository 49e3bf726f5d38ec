// Package task provides the task model and dependency rules for sheetboard.
package task

// Role represents a workspace member's access level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ValidRoles returns all valid role values.
func ValidRoles() []Role {
	return []Role{RoleAdmin, RoleUser}
}

// IsValidRole returns true if the role is a valid role value.
func IsValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// User is a workspace member from the shared member directory. Tasks
// reference users by email only; the directory supplies display data.
type User struct {
	// Email is the unique key tasks reference via AssigneeEmail.
	Email string `yaml:"email" json:"email"`

	// Name is the member's display name.
	Name string `yaml:"name" json:"name"`

	// Role is the member's access level.
	Role Role `yaml:"role,omitempty" json:"role,omitempty"`

	// Department groups members for display.
	Department string `yaml:"department,omitempty" json:"department,omitempty"`
}

// GetRole returns the user's role, defaulting to user if not set.
func (u *User) GetRole() Role {
	if u.Role == "" {
		return RoleUser
	}
	return u.Role
}

// FindUser returns the user with the given email, or nil.
func FindUser(users []*User, email string) *User {
	for _, u := range users {
		if u.Email == email {
			return u
		}
	}
	return nil
}
