package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"medquiz/internal/auth"
	"medquiz/internal/config"
	"medquiz/internal/repository/postgres"
	"medquiz/internal/seed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed the catalog")
	clearData := flag.Bool("clear-data", false, "Clear all catalog data (keep schema)")
	catalogFile := flag.String("catalog", "", "Path to a YAML catalog file (defaults to the embedded catalog)")
	adminEmail := flag.String("admin-email", "", "Create a confirmed admin user with this email (requires SUPABASE_URL and SUPABASE_KEY)")
	adminPassword := flag.String("admin-password", "", "Password for the admin user created with --admin-email")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
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
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	// Exit early if schema-only mode
	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Clear existing catalog data before seeding, and exit early if
	// that is all that was asked for
	log.Println("🧹 Clearing existing catalog data...")
	if err := clearCatalogData(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to clear data: %v", err)
	}
	if *clearData {
		log.Println("✅ Data cleared successfully")
		return
	}

	// Create the admin user if requested
	if *adminEmail != "" {
		if err := ensureAdminUser(cfg, *adminEmail, *adminPassword); err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		log.Printf("✅ Admin user ready: %s", *adminEmail)
	}

	// Load the seed catalog
	catalog, err := loadCatalog(*catalogFile)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	courseRepo := postgres.NewCourseRepository(repoConfig)
	subjectRepo := postgres.NewSubjectRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	quizRepo := postgres.NewQuizRepository(repoConfig)

	// Seed the catalog
	log.Printf("📝 Seeding %d courses...", len(catalog.Courses))
	seeder := seed.NewCatalogSeeder(courseRepo, subjectRepo, folderRepo, quizRepo, logger)
	if err := seeder.Seed(ctx, catalog); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Println("🎉 Seeding complete!")
}

// ensureAdminUser recreates the admin user through the Supabase Admin
// API. The role lands in app_metadata, which is what the API's admin
// gate reads.
func ensureAdminUser(cfg *config.Config, email, password string) error {
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY must be set to manage users")
	}
	if password == "" {
		return fmt.Errorf("--admin-password is required with --admin-email")
	}

	client := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
	if err := client.DeleteUserByEmail(email); err != nil {
		return err
	}
	_, err := client.CreateUser(email, password, map[string]interface{}{"role": "admin"})
	return err
}

// loadCatalog reads the catalog from a file, falling back to the
// embedded default
func loadCatalog(path string) (*seed.Catalog, error) {
	if path == "" {
		return seed.DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.ParseCatalog(data)
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	_, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	if err != nil {
		return err
	}

	// Create courses table
	createCourses := `
		CREATE TABLE IF NOT EXISTS ` + tables.Courses + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createCourses); err != nil {
		return err
	}

	// Create subjects table. folder_id is a legacy parent reference kept
	// for records imported from older data; it has no FK because the
	// folders table references subjects.
	createSubjects := `
		CREATE TABLE IF NOT EXISTS ` + tables.Subjects + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			course_id UUID REFERENCES ` + tables.Courses + `(id) ON DELETE SET NULL,
			folder_id UUID,
			icon TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createSubjects); err != nil {
		return err
	}

	// Create folders table. course_id is a legacy reference resolved
	// during normalization.
	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			parent_id UUID REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			subject_id UUID REFERENCES ` + tables.Subjects + `(id) ON DELETE CASCADE,
			course_id UUID,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return err
	}

	// Create quizzes table
	createQuizzes := `
		CREATE TABLE IF NOT EXISTS ` + tables.Quizzes + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			title TEXT NOT NULL,
			folder_id UUID REFERENCES ` + tables.Folders + `(id) ON DELETE CASCADE,
			subject_id UUID,
			questions JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createQuizzes); err != nil {
		return err
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `subjects_course ON ` + tables.Subjects + `(course_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_parent ON ` + tables.Folders + `(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `folders_subject ON ` + tables.Folders + `(subject_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `quizzes_folder ON ` + tables.Quizzes + `(folder_id)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Quizzes,
		tables.Folders,
		tables.Subjects,
		tables.Courses,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// clearCatalogData deletes all rows, leaves first
func clearCatalogData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Quizzes,
		tables.Folders,
		tables.Subjects,
		tables.Courses,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	return nil
}
