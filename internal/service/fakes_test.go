package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int
	// updateErr, when set, fails the next Update call
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) add(u models.User) *models.User {
	if u.ID == "" {
		r.nextID++
		u.ID = fmt.Sprintf("u%d", r.nextID)
	}
	u.CreatedAt = time.Now()
	stored := u
	r.users[u.ID] = &stored
	return &stored
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return &domain.ConflictError{Message: "a user with this email already exists"}
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("u%d", r.nextID)
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "user not found"}
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, &domain.NotFoundError{Message: "user not found"}
}

func (r *fakeUserRepo) List(_ context.Context, activeOnly bool) ([]models.User, error) {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		if activeOnly && !u.IsActive {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if r.updateErr != nil {
		err := r.updateErr
		r.updateErr = nil
		return err
	}
	if _, ok := r.users[user.ID]; !ok {
		return &domain.NotFoundError{Message: "user not found"}
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// fakeProjectRepo is an in-memory ProjectRepository.
type fakeProjectRepo struct {
	projects map[string]*models.Project
	nextID   int
	// createErr, when set, fails the next Create call
	createErr error
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*models.Project)}
}

func (r *fakeProjectRepo) add(p models.Project) *models.Project {
	if p.ID == "" {
		r.nextID++
		p.ID = fmt.Sprintf("p%d", r.nextID)
	}
	if p.Status == "" {
		p.Status = models.ProjectStatusActive
	}
	stored := p
	r.projects[p.ID] = &stored
	return &stored
}

func (r *fakeProjectRepo) Create(_ context.Context, project *models.Project) error {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	r.nextID++
	project.ID = fmt.Sprintf("p%d", r.nextID)
	project.CreatedAt = time.Now()
	stored := *project
	r.projects[project.ID] = &stored
	return nil
}

func copyProject(p *models.Project) *models.Project {
	copied := *p
	copied.TeamMembers = append([]models.TeamMember(nil), p.TeamMembers...)
	return &copied
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*models.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "project not found"}
	}
	return copyProject(p), nil
}

func (r *fakeProjectRepo) ListByStatus(_ context.Context, status models.ProjectStatus) ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.projects {
		if p.Status == status {
			out = append(out, *copyProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProjectRepo) ListForUser(_ context.Context, userID string) ([]models.Project, error) {
	var out []models.Project
	for _, p := range r.projects {
		if p.CreatedBy == userID || p.ProjectLead == userID || p.HasMember(userID) {
			out = append(out, *copyProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *models.Project) error {
	existing, ok := r.projects[project.ID]
	if !ok {
		return &domain.NotFoundError{Message: "project not found"}
	}
	updated := *copyProject(project)
	updated.TeamMembers = existing.TeamMembers
	r.projects[project.ID] = &updated
	return nil
}

func (r *fakeProjectRepo) AddMember(_ context.Context, projectID, userID string, role models.MemberRole) error {
	p, ok := r.projects[projectID]
	if !ok {
		return &domain.NotFoundError{Message: "project not found"}
	}
	if p.HasMember(userID) {
		return &domain.ConflictError{Message: "user is already assigned to this project"}
	}
	p.TeamMembers = append(p.TeamMembers, models.TeamMember{
		UserID:     userID,
		Role:       role,
		AssignedAt: time.Now(),
	})
	return nil
}

func (r *fakeProjectRepo) RemoveMember(_ context.Context, projectID, userID string) error {
	p, ok := r.projects[projectID]
	if !ok {
		return &domain.NotFoundError{Message: "project not found"}
	}
	for i, tm := range p.TeamMembers {
		if tm.UserID == userID {
			p.TeamMembers = append(p.TeamMembers[:i], p.TeamMembers[i+1:]...)
			return nil
		}
	}
	return &domain.NotFoundError{Message: "user is not assigned to this project"}
}

// fakeDocRepo is an in-memory DocumentRepository.
type fakeDocRepo struct {
	docs   map[string]*models.Document
	nextID int
	// createErr, when set, fails the next Create call
	createErr error
}

func newFakeDocRepo() *fakeDocRepo {
	return &fakeDocRepo{docs: make(map[string]*models.Document)}
}

func (r *fakeDocRepo) add(d models.Document) *models.Document {
	if d.ID == "" {
		r.nextID++
		d.ID = fmt.Sprintf("d%d", r.nextID)
	}
	stored := d
	r.docs[d.ID] = &stored
	return &stored
}

func (r *fakeDocRepo) Create(_ context.Context, doc *models.Document) error {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	r.nextID++
	doc.ID = fmt.Sprintf("d%d", r.nextID)
	doc.UploadedAt = time.Now()
	stored := *doc
	r.docs[doc.ID] = &stored
	return nil
}

func (r *fakeDocRepo) GetByID(_ context.Context, id string) (*models.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "document not found"}
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDocRepo) ListByProject(_ context.Context, projectID string) ([]models.Document, error) {
	var out []models.Document
	for _, d := range r.docs {
		if d.ProjectID == projectID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r *fakeDocRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return &domain.NotFoundError{Message: "document not found"}
	}
	delete(r.docs, id)
	return nil
}

// fakeTxManager runs the function directly, no transaction semantics.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
