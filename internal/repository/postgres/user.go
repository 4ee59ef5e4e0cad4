package postgres

import (
	"context"
	"fmt"

	"projecthub/internal/domain"
	"projecthub/internal/domain/models"
	"projecthub/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const userColumns = "id, full_name, email, password_hash, role, mfa_enabled, mfa_secret, is_active, created_at, updated_at"

func scanUser(row interface{ Scan(...interface{}) error }, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.MFAEnabled,
		&user.MFASecret,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

// Create inserts a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (full_name, email, password_hash, role, mfa_enabled, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.MFAEnabled,
		user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{Message: fmt.Sprintf("user with email '%s' already exists", user.Email)}
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, userColumns, r.tables.Users)

	var user models.User
	executor := GetExecutor(ctx, r.pool)
	if err := scanUser(executor.QueryRow(ctx, query, id), &user); err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: "user not found"}
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email, including the password hash
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = lower($1)`, userColumns, r.tables.Users)

	var user models.User
	executor := GetExecutor(ctx, r.pool)
	if err := scanUser(executor.QueryRow(ctx, query, email), &user); err != nil {
		if IsPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Message: "user not found"}
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

// List retrieves users ordered by creation time
func (r *PostgresUserRepository) List(ctx context.Context, activeOnly bool) ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, userColumns, r.tables.Users)
	if activeOnly {
		query += " WHERE is_active"
	}
	query += " ORDER BY created_at"

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	if users == nil {
		users = []models.User{}
	}

	return users, nil
}

// Update persists mutable fields and refreshes updated_at
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET full_name = $1, role = $2, is_active = $3, password_hash = $4,
		    mfa_enabled = $5, mfa_secret = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at
	`, r.tables.Users)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		user.FullName,
		user.Role,
		user.IsActive,
		user.PasswordHash,
		user.MFAEnabled,
		user.MFASecret,
		user.ID,
	).Scan(&user.UpdatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return &domain.NotFoundError{Message: "user not found"}
		}
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}
