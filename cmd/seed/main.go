package main

import (
	"context"
	"flag"
	"log"
	"os"

	"projecthub/internal/auth"
	"projecthub/internal/config"
	"projecthub/internal/domain/models"
	"projecthub/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed fixture data")
	fixtureFile := flag.String("fixtures", "scripts/fixtures.yaml", "YAML fixture file with users and projects")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Run schema to ensure tables exist
	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Load fixtures
	fixtures, err := loadFixtures(*fixtureFile)
	if err != nil {
		log.Fatalf("Failed to load fixtures from %s: %v", *fixtureFile, err)
	}

	if err := seedFixtures(ctx, pool, tables, fixtures); err != nil {
		log.Fatalf("Failed to seed fixtures: %v", err)
	}

	log.Println("🎉 Seeding complete!")
}

// fixtureUser is one seeded account; passwords are hashed on insert.
type fixtureUser struct {
	FullName string `yaml:"full_name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// fixtureProject seeds a project plus its team. Lead and members
// reference users by email.
type fixtureProject struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Deadline    string   `yaml:"deadline"`
	Status      string   `yaml:"status"`
	Lead        string   `yaml:"lead"`
	Members     []string `yaml:"members"`
}

type fixtureFileContent struct {
	Users    []fixtureUser    `yaml:"users"`
	Projects []fixtureProject `yaml:"projects"`
}

func loadFixtures(path string) (*fixtureFileContent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixtures fixtureFileContent
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return nil, err
	}
	return &fixtures, nil
}

// seedFixtures inserts fixture users and projects idempotently; rows
// that already exist are left alone.
func seedFixtures(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, fixtures *fixtureFileContent) error {
	userIDs := make(map[string]string, len(fixtures.Users))

	for _, u := range fixtures.Users {
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			return err
		}

		var id string
		err = pool.QueryRow(ctx, `
			INSERT INTO `+tables.Users+` (full_name, email, password_hash, role, is_active)
			VALUES ($1, lower($2), $3, $4, TRUE)
			ON CONFLICT (email) DO UPDATE SET full_name = EXCLUDED.full_name
			RETURNING id
		`, u.FullName, u.Email, hash, u.Role).Scan(&id)
		if err != nil {
			return err
		}
		userIDs[u.Email] = id
		log.Printf("✅ User %s (%s)", u.Email, u.Role)
	}

	for _, p := range fixtures.Projects {
		leadID, ok := userIDs[p.Lead]
		if !ok {
			log.Printf("❌ Project '%s': lead %s not in fixture users, skipping", p.Name, p.Lead)
			continue
		}

		status := p.Status
		if status == "" {
			status = string(models.ProjectStatusActive)
		}

		var projectID string
		err := pool.QueryRow(ctx, `
			INSERT INTO `+tables.Projects+` (name, description, deadline, status, created_by, project_lead)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING id
		`, p.Name, p.Description, p.Deadline, status, leadID).Scan(&projectID)
		if err != nil {
			return err
		}

		memberRows := [][2]string{{leadID, string(models.MemberRoleLead)}}
		for _, email := range p.Members {
			memberID, ok := userIDs[email]
			if !ok {
				log.Printf("❌ Project '%s': member %s not in fixture users, skipping", p.Name, email)
				continue
			}
			memberRows = append(memberRows, [2]string{memberID, string(models.MemberRoleDeveloper)})
		}

		for _, row := range memberRows {
			_, err := pool.Exec(ctx, `
				INSERT INTO `+tables.ProjectMembers+` (project_id, user_id, role)
				VALUES ($1, $2, $3)
				ON CONFLICT (project_id, user_id) DO NOTHING
			`, projectID, row[0], row[1])
			if err != nil {
				return err
			}
		}

		log.Printf("✅ Project %s (lead %s, %d members)", p.Name, p.Lead, len(memberRows))
	}

	return nil
}
