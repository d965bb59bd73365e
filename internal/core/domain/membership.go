package domain

import "time"

// Role is a club membership role.
type Role string

const (
	RoleMember    Role = "member"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// Assignable reports whether r may be granted through recruitment.
func (r Role) Assignable() bool {
	return r == RoleMember || r == RoleOrganizer
}

// CanManage reports whether r may manage the club's campaigns.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleOrganizer
}

// Membership links a user to a club. Recruitment creates it on approval but
// does not own it afterwards.
type Membership struct {
	ID       string
	ClubID   string
	UserID   string
	Role     Role
	JoinedAt time.Time
}
