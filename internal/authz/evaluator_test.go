package authz

import (
	"errors"
	"testing"

	"projecthub/internal/domain"
)

func developer(id string) Principal {
	return Principal{ID: id, Role: RoleDeveloper, Active: true}
}

func lead(id string) Principal {
	return Principal{ID: id, Role: RoleProjectLead, Active: true}
}

func admin(id string) Principal {
	return Principal{ID: id, Role: RoleAdmin, Active: true}
}

// project led by u2 with members u1 (developer) and u2 (lead)
func sampleProject() *ProjectRef {
	return &ProjectRef{Lead: "u2", MemberIDs: []string{"u1", "u2"}}
}

func TestDecideProjectRead(t *testing.T) {
	tests := []struct {
		name        string
		principal   Principal
		wantAllowed bool
		wantReason  Reason
	}{
		{name: "team member", principal: developer("u1"), wantAllowed: true},
		{name: "project lead", principal: lead("u2"), wantAllowed: true},
		{name: "admin outsider", principal: admin("u3"), wantAllowed: true},
		{name: "developer outsider", principal: developer("u9"), wantAllowed: false, wantReason: ReasonNotProjectMember},
		{name: "lead of another project", principal: lead("u9"), wantAllowed: false, wantReason: ReasonNotProjectMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := Decide(tt.principal, ActionProjectRead, Resource{Project: sampleProject()})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dec.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", dec.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && dec.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", dec.Reason, tt.wantReason)
			}
		})
	}
}

func TestDecideMembershipActions(t *testing.T) {
	proj := sampleProject()

	// u1 is a team member but not the lead: may read, may not remove members
	dec, err := Decide(developer("u1"), ActionProjectRemoveMember, Resource{Project: proj})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Allowed {
		t.Error("team member should not remove members")
	}
	if dec.Reason != ReasonNotLeadOrAdmin {
		t.Errorf("Reason = %q, want %q", dec.Reason, ReasonNotLeadOrAdmin)
	}

	// the lead may assign and remove; lead identity is compared by id, not role
	for _, action := range []Action{ActionProjectAssignMember, ActionProjectRemoveMember, ActionProjectUpdate, ActionDocumentUpload} {
		dec, err := Decide(lead("u2"), action, Resource{Project: proj})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", action, err)
		}
		if !dec.Allowed {
			t.Errorf("%s: lead should be allowed", action)
		}

		// a different principal holding the project-lead role is not this
		// project's lead and must be denied
		dec, err = Decide(lead("u7"), action, Resource{Project: proj})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", action, err)
		}
		if dec.Allowed {
			t.Errorf("%s: unrelated lead-role principal should be denied", action)
		}
	}
}

func TestDecideAdminAllowsEverything(t *testing.T) {
	res := Resource{
		User:     &UserRef{ID: "someone-else"},
		Project:  sampleProject(),
		Document: &DocumentRef{UploadedBy: "someone-else"},
	}

	actions := []Action{
		ActionUserList, ActionUserRead, ActionUserCreate, ActionUserUpdate,
		ActionProjectCreate, ActionProjectRead, ActionProjectUpdate,
		ActionProjectAssignMember, ActionProjectRemoveMember,
		ActionDocumentUpload, ActionDocumentRead, ActionDocumentDelete,
	}
	for _, action := range actions {
		dec, err := Decide(admin("u3"), action, res)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", action, err)
		}
		if !dec.Allowed {
			t.Errorf("%s: admin should be allowed", action)
		}
	}
}

func TestDecideUserActions(t *testing.T) {
	tests := []struct {
		name        string
		principal   Principal
		action      Action
		res         Resource
		wantAllowed bool
	}{
		{name: "lead lists users", principal: lead("u2"), action: ActionUserList, wantAllowed: true},
		{name: "developer lists users", principal: developer("u1"), action: ActionUserList, wantAllowed: false},
		{name: "lead cannot create users", principal: lead("u2"), action: ActionUserCreate, wantAllowed: false},
		{name: "lead cannot update users", principal: lead("u2"), action: ActionUserUpdate, wantAllowed: false},
		{name: "self update own profile", principal: developer("u1"), action: ActionUserUpdateSelf, res: Resource{User: &UserRef{ID: "u1"}}, wantAllowed: true},
		{name: "self update other profile", principal: developer("u1"), action: ActionUserUpdateSelf, res: Resource{User: &UserRef{ID: "u2"}}, wantAllowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := Decide(tt.principal, tt.action, tt.res)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if dec.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", dec.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && dec.Reason != ReasonInsufficientRole {
				t.Errorf("Reason = %q, want %q", dec.Reason, ReasonInsufficientRole)
			}
		})
	}
}

func TestDecideDocumentDelete(t *testing.T) {
	doc := &DocumentRef{UploadedBy: "u4"}

	dec, err := Decide(developer("u4"), ActionDocumentDelete, Resource{Document: doc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dec.Allowed {
		t.Error("uploader should be allowed to delete")
	}

	dec, err = Decide(developer("u5"), ActionDocumentDelete, Resource{Document: doc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Allowed {
		t.Error("non-uploader non-admin should be denied")
	}
	if dec.Reason != ReasonNotOwnerOrAdmin {
		t.Errorf("Reason = %q, want %q", dec.Reason, ReasonNotOwnerOrAdmin)
	}
}

func TestDecideInactivePrincipal(t *testing.T) {
	// inactive principals are denied for every action regardless of role
	// or ownership, even admins
	inactive := Principal{ID: "u3", Role: RoleAdmin, Active: false}

	actions := []Action{
		ActionUserList, ActionUserCreate, ActionProjectCreate,
		ActionProjectRead, ActionDocumentDelete,
	}
	for _, action := range actions {
		dec, err := Decide(inactive, action, Resource{})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", action, err)
		}
		if dec.Allowed {
			t.Errorf("%s: inactive principal should be denied", action)
		}
		if dec.Reason != ReasonInactiveAccount {
			t.Errorf("%s: Reason = %q, want %q", action, dec.Reason, ReasonInactiveAccount)
		}
	}
}

func TestDecideIntegrityErrors(t *testing.T) {
	// a project snapshot with no lead is a data defect, not a denial
	_, err := Decide(admin("u3"), ActionProjectRead, Resource{Project: &ProjectRef{}})
	if err == nil {
		t.Fatal("expected integrity error for project without lead")
	}
	if !errors.Is(err, domain.ErrIntegrity) {
		t.Errorf("error = %v, want integrity error", err)
	}

	// a missing required ref is equally a defect
	_, err = Decide(admin("u3"), ActionDocumentDelete, Resource{})
	if err == nil {
		t.Fatal("expected integrity error for missing document reference")
	}
	if !errors.Is(err, domain.ErrIntegrity) {
		t.Errorf("error = %v, want integrity error", err)
	}
}

func TestDecideUnknownActionDenied(t *testing.T) {
	dec, err := Decide(admin("u3"), Action("project.destroy"), Resource{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Allowed {
		t.Error("unknown action must be denied by default")
	}
}
