package model

// Role distinguishes administrators from regular users.
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// User is the signed-in identity as exposed by the surrounding application.
// Only Role matters to the exam engine.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Branch string `json:"branch,omitempty"`
}

// IsAdmin reports whether the user may author questions.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// SetCurrentUserRequest is the payload used by operator tooling to set the
// signed-in user.
type SetCurrentUserRequest struct {
	ID   string `json:"id" binding:"required,min=1,max=64"`
	Name string `json:"name" binding:"required,min=2,max=100"`
	Role Role   `json:"role" binding:"required,oneof=User Admin"`
}
