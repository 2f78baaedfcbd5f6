package users

import (
	"strings"
	"time"
)

// Role is the flat role tag stored with every user.
type Role string

const (
	RoleTalent    Role = "talent"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// DefaultRole is assigned when a user is created without a role.
const DefaultRole = RoleTalent

// Valid reports whether r is one of the stored roles.
func (r Role) Valid() bool {
	switch r {
	case RoleTalent, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// User is the credential store record. PasswordDigest never leaves the
// server: it has no JSON name and View drops it.
type User struct {
	ID             string    `db:"id"`
	Email          string    `db:"email"`
	PasswordDigest string    `db:"password_digest" json:"-"`
	FullName       string    `db:"full_name"`
	Phone          string    `db:"phone"`
	Role           Role      `db:"role"`
	CreatedAt      time.Time `db:"created_at"`
}

// View is the sanitized user representation returned to clients.
type View struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
}

// View strips the digest from u.
func (u *User) View() *View {
	return &View{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		Phone:    u.Phone,
	}
}

// NormalizeEmail trims and lower-cases an email so that lookups and the
// uniqueness check agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
