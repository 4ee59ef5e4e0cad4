package models

import (
	"time"

	"projecthub/internal/authz"
)

// ProjectStatus is a project's lifecycle state. Projects have no terminal
// deletion path; they only transition between statuses.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	}
	return false
}

// MemberRole is a team member's role within one project, distinct from
// the principal's system-wide role.
type MemberRole string

const (
	MemberRoleLead      MemberRole = "lead"
	MemberRoleDeveloper MemberRole = "developer"
)

// TeamMember is one entry of a project's member list.
type TeamMember struct {
	UserID     string      `json:"user_id" db:"user_id"`
	Role       MemberRole  `json:"role" db:"role"`
	AssignedAt time.Time   `json:"assigned_at" db:"assigned_at"`
	User       UserSummary `json:"user"`
}

// Project groups team members and documents under a lead. The principal
// referenced by ProjectLead always appears in TeamMembers with role lead;
// creation seeds that entry. Member user IDs are unique per project.
type Project struct {
	ID          string        `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	Deadline    time.Time     `json:"deadline" db:"deadline"`
	Status      ProjectStatus `json:"status" db:"status"`
	CreatedBy   string        `json:"created_by" db:"created_by"`
	ProjectLead string        `json:"project_lead" db:"project_lead"`
	TeamMembers []TeamMember  `json:"team_members"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// Ref returns the authorization snapshot of the project.
func (p *Project) Ref() *authz.ProjectRef {
	ids := make([]string, 0, len(p.TeamMembers))
	for _, tm := range p.TeamMembers {
		ids = append(ids, tm.UserID)
	}
	return &authz.ProjectRef{
		Lead:      p.ProjectLead,
		MemberIDs: ids,
	}
}

// HasMember reports whether userID appears in the member list.
func (p *Project) HasMember(userID string) bool {
	for _, tm := range p.TeamMembers {
		if tm.UserID == userID {
			return true
		}
	}
	return false
}
