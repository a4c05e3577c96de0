package domain

import (
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
)

// ProjectPublisherRole is the role allowed to publish projects.
const ProjectPublisherRole = RoleFreelancer

// FreelancerRoleLabels lists every stored label that denotes a freelancer,
// including variants found in historical documents.
var FreelancerRoleLabels = []string{"freelancer", "freelancer ", "executor"}

// ParseRole maps a raw role label onto the enum. Surrounding whitespace and
// case are ignored, and the legacy "executor" label reads as a freelancer.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client":
		return RoleClient, nil
	case "freelancer", "executor":
		return RoleFreelancer, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }

// User is a registered account. Users are immutable after registration.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Skills       string    `json:"skills,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// IsFreelancer reports whether the user can be found through search.
func (u *User) IsFreelancer() bool {
	return u.Role == RoleFreelancer
}
