// Package authz implements the access-control evaluator: a single ordered
// decision table governing who may read, write, or delete each entity.
// It is a pure function of its inputs - no shared state, no I/O - and is
// safe to call concurrently. Callers are expected to pass a just-read
// snapshot of the resource, not a cached one.
package authz

import (
	"fmt"

	"projecthub/internal/domain"
)

// Role is a principal's system-wide role.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleProjectLead Role = "project-lead"
	RoleDeveloper   Role = "developer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProjectLead, RoleDeveloper:
		return true
	}
	return false
}

// Action identifies an operation subject to an access decision.
type Action string

const (
	ActionUserList       Action = "user.list"
	ActionUserRead       Action = "user.read"
	ActionUserCreate     Action = "user.create"
	ActionUserUpdate     Action = "user.update"      // role/active/name, admin surface
	ActionUserUpdateSelf Action = "user.update-self" // own profile/password

	ActionProjectCreate       Action = "project.create"
	ActionProjectRead         Action = "project.read"
	ActionProjectUpdate       Action = "project.update" // metadata/status
	ActionProjectAssignMember Action = "project.assign-member"
	ActionProjectRemoveMember Action = "project.remove-member"

	ActionDocumentUpload Action = "document.upload"
	ActionDocumentRead   Action = "document.read" // read/download/list
	ActionDocumentDelete Action = "document.delete"
)

// Reason is the code reported to the HTTP layer on denial.
type Reason string

const (
	ReasonNotProjectMember Reason = "not-project-member"
	ReasonNotLeadOrAdmin   Reason = "not-lead-or-admin"
	ReasonNotOwnerOrAdmin  Reason = "not-owner-or-admin"
	ReasonInactiveAccount  Reason = "inactive-account"
	ReasonInsufficientRole Reason = "insufficient-role"
)

// Principal is an authenticated actor.
type Principal struct {
	ID     string
	Role   Role
	Active bool
}

// UserRef is the snapshot of a target user record.
type UserRef struct {
	ID string
}

// ProjectRef is the snapshot of a project's ownership and membership data.
type ProjectRef struct {
	Lead      string
	MemberIDs []string
}

// DocumentRef is the snapshot of a document's ownership data. Project is
// the document's owning project, required for read/upload decisions.
type DocumentRef struct {
	UploadedBy string
}

// Resource is the target of a decision. Exactly the refs the action needs
// must be set; a missing or malformed ref is a data-integrity defect, not
// a denial.
type Resource struct {
	User     *UserRef
	Project  *ProjectRef
	Document *DocumentRef
}

// Decision is the evaluator's verdict. Reason is set only on denial.
type Decision struct {
	Allowed bool
	Reason  Reason
}

var allow = Decision{Allowed: true}

func deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// rule is one row of the decision table. The first row matching the
// action wins; its predicate decides, and its reason explains a denial.
type rule struct {
	action       Action
	needsUser    bool
	needsProject bool
	needsDoc     bool
	allowed      func(p Principal, res Resource) bool
	reason       Reason
}

func isLeadOrAdmin(p Principal, res Resource) bool {
	return p.ID == res.Project.Lead || p.Role == RoleAdmin
}

func isMemberLeadOrAdmin(p Principal, res Resource) bool {
	if isLeadOrAdmin(p, res) {
		return true
	}
	for _, id := range res.Project.MemberIDs {
		if id == p.ID {
			return true
		}
	}
	return false
}

// table is the single source of truth for authorization. Row order
// follows the contract's decision table.
var table = []rule{
	{
		action:  ActionUserList,
		allowed: func(p Principal, _ Resource) bool { return p.Role == RoleAdmin || p.Role == RoleProjectLead },
		reason:  ReasonInsufficientRole,
	},
	{
		action:  ActionUserRead,
		allowed: func(p Principal, _ Resource) bool { return p.Role == RoleAdmin || p.Role == RoleProjectLead },
		reason:  ReasonInsufficientRole,
	},
	{
		action:  ActionUserCreate,
		allowed: func(p Principal, _ Resource) bool { return p.Role == RoleAdmin },
		reason:  ReasonInsufficientRole,
	},
	{
		action:  ActionUserUpdate,
		allowed: func(p Principal, _ Resource) bool { return p.Role == RoleAdmin },
		reason:  ReasonInsufficientRole,
	},
	{
		action:    ActionUserUpdateSelf,
		needsUser: true,
		allowed:   func(p Principal, res Resource) bool { return p.ID == res.User.ID },
		reason:    ReasonInsufficientRole,
	},
	{
		action:  ActionProjectCreate,
		allowed: func(p Principal, _ Resource) bool { return p.Role == RoleAdmin || p.Role == RoleProjectLead },
		reason:  ReasonInsufficientRole,
	},
	{
		action:       ActionProjectRead,
		needsProject: true,
		allowed:      isMemberLeadOrAdmin,
		reason:       ReasonNotProjectMember,
	},
	{
		action:       ActionProjectUpdate,
		needsProject: true,
		allowed:      isLeadOrAdmin,
		reason:       ReasonNotLeadOrAdmin,
	},
	{
		action:       ActionProjectAssignMember,
		needsProject: true,
		allowed:      isLeadOrAdmin,
		reason:       ReasonNotLeadOrAdmin,
	},
	{
		action:       ActionProjectRemoveMember,
		needsProject: true,
		allowed:      isLeadOrAdmin,
		reason:       ReasonNotLeadOrAdmin,
	},
	{
		action:       ActionDocumentUpload,
		needsProject: true,
		allowed:      isLeadOrAdmin,
		reason:       ReasonNotLeadOrAdmin,
	},
	{
		action:       ActionDocumentRead,
		needsProject: true,
		allowed:      isMemberLeadOrAdmin,
		reason:       ReasonNotProjectMember,
	},
	{
		action:   ActionDocumentDelete,
		needsDoc: true,
		allowed:  func(p Principal, res Resource) bool { return p.ID == res.Document.UploadedBy || p.Role == RoleAdmin },
		reason:   ReasonNotOwnerOrAdmin,
	},
}

// Decide evaluates the decision table for (principal, action, resource).
// Denial is a normal outcome, returned as a Decision with a Reason. The
// returned error is non-nil only for defects: a malformed resource
// reference such as a project with no lead, or a ref the action requires
// that the caller did not supply.
func Decide(p Principal, action Action, res Resource) (Decision, error) {
	if !p.Active {
		return deny(ReasonInactiveAccount), nil
	}

	for _, r := range table {
		if r.action != action {
			continue
		}
		if err := checkRefs(r, action, res); err != nil {
			return Decision{}, err
		}
		if r.allowed(p, res) {
			return allow, nil
		}
		return deny(r.reason), nil
	}

	// Unknown actions are denied, never allowed by omission.
	return deny(ReasonInsufficientRole), nil
}

// checkRefs verifies the resource snapshot carries what the rule needs.
func checkRefs(r rule, action Action, res Resource) error {
	if r.needsUser && res.User == nil {
		return &domain.IntegrityError{Message: fmt.Sprintf("%s: missing user reference", action)}
	}
	if r.needsProject {
		if res.Project == nil {
			return &domain.IntegrityError{Message: fmt.Sprintf("%s: missing project reference", action)}
		}
		if res.Project.Lead == "" {
			return &domain.IntegrityError{Message: fmt.Sprintf("%s: project has no lead", action)}
		}
	}
	if r.needsDoc && res.Document == nil {
		return &domain.IntegrityError{Message: fmt.Sprintf("%s: missing document reference", action)}
	}
	return nil
}
