package entity

import "strings"

// Role is the kind of account. It decides which side of the job board the
// user acts on.
type Role string

const (
	RoleSeeker    Role = "seeker"
	RoleRecruiter Role = "recruiter"
)

// ParseRole returns the Role for s, or false when s is not a known role.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleSeeker, RoleRecruiter:
		return r, true
	default:
		return "", false
	}
}

// ParseSkills splits a comma-separated skill list, keeping order and
// dropping blank entries.
func ParseSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}
