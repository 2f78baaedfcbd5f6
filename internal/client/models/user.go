// Package models holds the client-side view of the auth API payloads.
package models

// Role values the server may return. Sign-up offers only talent and
// recruiter; admin accounts are created elsewhere.
const (
	RoleTalent    = "talent"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// User is the sanitized user view returned by the server.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
}

// Session is the body of a successful register or login.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
