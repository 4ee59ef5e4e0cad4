package service

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"projecthub/internal/authz"
	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	svc "projecthub/internal/domain/services"
	"projecthub/internal/storage/filestore"
)

func seedDocumentFixture(t *testing.T) (*fakeUserRepo, *fakeProjectRepo, *fakeDocRepo, *filestore.FileStore, svc.DocumentService) {
	t.Helper()
	users := newFakeUserRepo()
	projects := newFakeProjectRepo()
	docs := newFakeDocRepo()

	store, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("filestore.New: %v", err)
	}

	users.add(models.User{ID: "admin", FullName: "Ada Admin", Email: "ada@example.com", Role: authz.RoleAdmin, IsActive: true})
	users.add(models.User{ID: "lead", FullName: "Lea Lead", Email: "lea@example.com", Role: authz.RoleProjectLead, IsActive: true})
	users.add(models.User{ID: "dev", FullName: "Dev One", Email: "dev@example.com", Role: authz.RoleDeveloper, IsActive: true})
	users.add(models.User{ID: "dev2", FullName: "Dev Two", Email: "dev2@example.com", Role: authz.RoleDeveloper, IsActive: true})

	projects.add(models.Project{
		ID: "p1", Name: "Atlas", ProjectLead: "lead", CreatedBy: "admin",
		TeamMembers: []models.TeamMember{
			{UserID: "lead", Role: models.MemberRoleLead},
			{UserID: "dev", Role: models.MemberRoleDeveloper},
		},
	})

	return users, projects, docs, store, NewDocumentService(docs, projects, store, testLogger())
}

func uploadReq(name, contentType, body string) *svc.UploadDocumentRequest {
	return &svc.UploadDocumentRequest{
		FileName:    name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Reader:      strings.NewReader(body),
	}
}

func TestDocumentUpload(t *testing.T) {
	users, _, _, store, service := seedDocumentFixture(t)

	doc, err := service.Upload(context.Background(), principalFor(t, users, "lead"), "p1",
		uploadReq("plan.pdf", "application/pdf", "%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if doc.ProjectID != "p1" || doc.UploadedBy != "lead" {
		t.Errorf("doc = %+v, want project p1 uploaded by lead", doc)
	}
	if doc.FileSize != int64(len("%PDF-1.4 fake")) {
		t.Errorf("FileSize = %d, want %d", doc.FileSize, len("%PDF-1.4 fake"))
	}
	if !store.Exists(doc.StoragePath) {
		t.Error("blob missing from store after upload")
	}
}

func TestDocumentUploadRejectsDisallowedType(t *testing.T) {
	users, _, _, _, service := seedDocumentFixture(t)

	_, err := service.Upload(context.Background(), principalFor(t, users, "lead"), "p1",
		uploadReq("run.sh", "application/x-sh", "#!/bin/sh"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestDocumentUploadDeniedForNonLead(t *testing.T) {
	users, _, _, _, service := seedDocumentFixture(t)

	_, err := service.Upload(context.Background(), principalFor(t, users, "dev"), "p1",
		uploadReq("plan.pdf", "application/pdf", "data"))
	var authzErr *domain.AuthorizationError
	if !errors.As(err, &authzErr) || authzErr.Reason != string(authz.ReasonNotLeadOrAdmin) {
		t.Fatalf("err = %v, want not-lead-or-admin denial", err)
	}
}

func TestDocumentUploadCompensatesFailedMetadataWrite(t *testing.T) {
	users := newFakeUserRepo()
	projects := newFakeProjectRepo()
	docs := newFakeDocRepo()

	dataDir := t.TempDir()
	store, err := filestore.New(dataDir)
	if err != nil {
		t.Fatalf("filestore.New: %v", err)
	}

	users.add(models.User{ID: "lead", FullName: "Lea Lead", Email: "lea@example.com", Role: authz.RoleProjectLead, IsActive: true})
	projects.add(models.Project{
		ID: "p1", Name: "Atlas", ProjectLead: "lead", CreatedBy: "lead",
		TeamMembers: []models.TeamMember{{UserID: "lead", Role: models.MemberRoleLead}},
	})

	service := NewDocumentService(docs, projects, store, testLogger())
	docs.createErr = errors.New("connection reset")

	_, err = service.Upload(context.Background(), principalFor(t, users, "lead"), "p1",
		uploadReq("plan.pdf", "application/pdf", "data"))
	if err == nil {
		t.Fatal("Upload succeeded, want injected failure")
	}

	// The blob written before the failed insert must not be left behind.
	if len(docs.docs) != 0 {
		t.Errorf("metadata records = %d, want 0", len(docs.docs))
	}
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("stored blobs = %d, want 0 after compensation", len(entries))
	}
}

func TestDocumentDownload(t *testing.T) {
	users, _, _, _, service := seedDocumentFixture(t)

	body := "quarterly numbers"
	doc, err := service.Upload(context.Background(), principalFor(t, users, "admin"), "p1",
		uploadReq("q3.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", body))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	meta, reader, err := service.Download(context.Background(), principalFor(t, users, "dev"), doc.ID)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer reader.Close()

	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(got) != body {
		t.Errorf("blob = %q, want %q", got, body)
	}
	if meta.FileName != "q3.xlsx" {
		t.Errorf("FileName = %q, want q3.xlsx", meta.FileName)
	}

	// A non-member of the owning project cannot download.
	_, _, err = service.Download(context.Background(), principalFor(t, users, "dev2"), doc.ID)
	var authzErr *domain.AuthorizationError
	if !errors.As(err, &authzErr) || authzErr.Reason != string(authz.ReasonNotProjectMember) {
		t.Errorf("non-member download = %v, want not-project-member denial", err)
	}
}

func TestDocumentDelete(t *testing.T) {
	users, _, docs, store, service := seedDocumentFixture(t)

	doc, err := service.Upload(context.Background(), principalFor(t, users, "lead"), "p1",
		uploadReq("old.pdf", "application/pdf", "stale"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	// Someone other than the uploader (and not admin) cannot delete.
	err = service.Delete(context.Background(), principalFor(t, users, "dev"), doc.ID)
	var authzErr *domain.AuthorizationError
	if !errors.As(err, &authzErr) || authzErr.Reason != string(authz.ReasonNotOwnerOrAdmin) {
		t.Fatalf("non-owner delete = %v, want not-owner-or-admin denial", err)
	}

	if err := service.Delete(context.Background(), principalFor(t, users, "lead"), doc.ID); err != nil {
		t.Fatalf("owner Delete: %v", err)
	}
	if len(docs.docs) != 0 {
		t.Error("metadata record still present after delete")
	}
	if store.Exists(doc.StoragePath) {
		t.Error("blob still present after delete")
	}

	if err := service.Delete(context.Background(), principalFor(t, users, "admin"), doc.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete = %v, want not found", err)
	}
}

func TestDocumentAdminCanDeleteAnyUpload(t *testing.T) {
	users, _, _, _, service := seedDocumentFixture(t)

	doc, err := service.Upload(context.Background(), principalFor(t, users, "lead"), "p1",
		uploadReq("notes.txt", "text/plain", "notes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := service.Delete(context.Background(), principalFor(t, users, "admin"), doc.ID); err != nil {
		t.Errorf("admin Delete: %v", err)
	}
}

func TestDocumentListByProject(t *testing.T) {
	users, _, _, _, service := seedDocumentFixture(t)

	for _, name := range []string{"a.pdf", "b.pdf"} {
		if _, err := service.Upload(context.Background(), principalFor(t, users, "lead"), "p1",
			uploadReq(name, "application/pdf", "x")); err != nil {
			t.Fatalf("Upload %s: %v", name, err)
		}
	}

	list, err := service.ListByProject(context.Background(), principalFor(t, users, "dev"), "p1")
	if err != nil {
		t.Fatalf("ListByProject: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("documents = %d, want 2", len(list))
	}

	_, err = service.ListByProject(context.Background(), principalFor(t, users, "dev2"), "p1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-member list = %v, want forbidden", err)
	}
}
