package postgres

import (
	"context"
	"fmt"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new project row
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, deadline, status, created_by, project_lead)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.Deadline,
		project.Status,
		project.CreatedBy,
		project.ProjectLead,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project with its full member list
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, deadline, status, created_by, project_lead, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Projects)

	var project models.Project
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Deadline,
		&project.Status,
		&project.CreatedBy,
		&project.ProjectLead,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: "project not found"}
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	members, err := r.loadMembers(ctx, []string{project.ID})
	if err != nil {
		return nil, err
	}
	project.TeamMembers = members[project.ID]
	if project.TeamMembers == nil {
		project.TeamMembers = []models.TeamMember{}
	}

	return &project, nil
}

// ListByStatus retrieves projects in the given status with members
func (r *PostgresProjectRepository) ListByStatus(ctx context.Context, status models.ProjectStatus) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, deadline, status, created_by, project_lead, created_at, updated_at
		FROM %s
		WHERE status = $1
		ORDER BY created_at DESC
	`, r.tables.Projects)

	return r.queryProjects(ctx, query, status)
}

// ListForUser retrieves projects the user leads, created, or belongs to
func (r *PostgresProjectRepository) ListForUser(ctx context.Context, userID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, deadline, status, created_by, project_lead, created_at, updated_at
		FROM %s
		WHERE project_lead = $1
		   OR created_by = $1
		   OR id IN (SELECT project_id FROM %s WHERE user_id = $1)
		ORDER BY created_at DESC
	`, r.tables.Projects, r.tables.ProjectMembers)

	return r.queryProjects(ctx, query, userID)
}

// Update persists name, description, deadline, status
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, deadline = $3, status = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.Deadline,
		project.Status,
		project.ID,
	).Scan(&project.UpdatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return &domain.NotFoundError{Message: "project not found"}
		}
		return fmt.Errorf("update project: %w", err)
	}

	return nil
}

// AddMember inserts a membership row. The unique (project_id, user_id)
// constraint makes duplicate assignment a conflict, not a second row.
func (r *PostgresProjectRepository) AddMember(ctx context.Context, projectID, userID string, role models.MemberRole) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, user_id, role)
		VALUES ($1, $2, $3)
	`, r.tables.ProjectMembers)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID, userID, role); err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{Message: "user is already assigned to this project"}
		}
		if IsPgForeignKeyError(err) {
			return &domain.NotFoundError{Message: "project or user not found"}
		}
		return fmt.Errorf("add team member: %w", err)
	}

	return nil
}

// RemoveMember deletes a membership row
func (r *PostgresProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE project_id = $1 AND user_id = $2
	`, r.tables.ProjectMembers)

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("remove team member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: "user is not assigned to this project"}
	}

	return nil
}

// queryProjects runs a project query and attaches member lists in one
// follow-up query.
func (r *PostgresProjectRepository) queryProjects(ctx context.Context, query string, args ...interface{}) ([]models.Project, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	var ids []string
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.Deadline,
			&project.Status,
			&project.CreatedBy,
			&project.ProjectLead,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
		ids = append(ids, project.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	if projects == nil {
		return []models.Project{}, nil
	}

	members, err := r.loadMembers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].TeamMembers = members[projects[i].ID]
		if projects[i].TeamMembers == nil {
			projects[i].TeamMembers = []models.TeamMember{}
		}
	}

	return projects, nil
}

// loadMembers fetches member lists for a batch of projects, joined with
// user summaries, ordered by assignment time.
func (r *PostgresProjectRepository) loadMembers(ctx context.Context, projectIDs []string) (map[string][]models.TeamMember, error) {
	query := fmt.Sprintf(`
		SELECT m.project_id, m.user_id, m.role, m.assigned_at,
		       u.full_name, u.email, u.role
		FROM %s m
		JOIN %s u ON u.id = m.user_id
		WHERE m.project_id = ANY($1)
		ORDER BY m.assigned_at
	`, r.tables.ProjectMembers, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("load team members: %w", err)
	}
	defer rows.Close()

	members := make(map[string][]models.TeamMember)
	for rows.Next() {
		var projectID string
		var tm models.TeamMember
		err := rows.Scan(
			&projectID,
			&tm.UserID,
			&tm.Role,
			&tm.AssignedAt,
			&tm.User.FullName,
			&tm.User.Email,
			&tm.User.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		tm.User.ID = tm.UserID
		members[projectID] = append(members[projectID], tm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team members: %w", err)
	}

	return members, nil
}
