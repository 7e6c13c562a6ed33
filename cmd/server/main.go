package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"medquiz/internal/auth"
	"medquiz/internal/config"
	"medquiz/internal/content"
	"medquiz/internal/domain/repositories"
	catalogRepo "medquiz/internal/domain/repositories/catalog"
	"medquiz/internal/handler"
	"medquiz/internal/middleware"
	"medquiz/internal/repository/memory"
	"medquiz/internal/repository/postgres"
	"medquiz/internal/seed"
	serviceCatalog "medquiz/internal/service/catalog"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

// maxLogFiles bounds how many rotated server logs LOG_DIR keeps.
const maxLogFiles = 5

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logWriter io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, maxLogFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logWriter = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier for Supabase authentication. Without a
	// Supabase project the dev verifier accepts every request as a
	// fixed admin user.
	var jwtVerifier auth.JWTVerifier
	var err error
	if cfg.JWKSURL == "" {
		jwtVerifier = auth.NewDevVerifier("dev-user", logger)
	} else {
		jwtVerifier, err = auth.NewJWTVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
	}
	defer jwtVerifier.Close()

	// Create repositories. Without DATABASE_URL the server runs on the
	// in-memory store preloaded with the default catalog.
	ctx := context.Background()
	var (
		courseRepo  catalogRepo.CourseRepository
		subjectRepo catalogRepo.SubjectRepository
		folderRepo  catalogRepo.FolderRepository
		quizRepo    catalogRepo.QuizRepository
		txManager   repositories.TransactionManager
	)

	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		courseRepo = memory.NewCourseRepository()
		subjectRepo = memory.NewSubjectRepository()
		folderRepo = memory.NewFolderRepository()
		quizRepo = memory.NewQuizRepository()
		txManager = memory.NewTransactionManager()

		catalog, err := seed.DefaultCatalog()
		if err != nil {
			log.Fatalf("Failed to parse default catalog: %v", err)
		}
		seeder := seed.NewCatalogSeeder(courseRepo, subjectRepo, folderRepo, quizRepo, logger)
		if err := seeder.Seed(ctx, catalog); err != nil {
			log.Fatalf("Failed to seed in-memory catalog: %v", err)
		}
	} else {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		logger.Info("database connected",
			"max_conns", 25,
			"min_conns", 5,
		)

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		courseRepo = postgres.NewCourseRepository(repoConfig)
		subjectRepo = postgres.NewSubjectRepository(repoConfig)
		folderRepo = postgres.NewFolderRepository(repoConfig)
		quizRepo = postgres.NewQuizRepository(repoConfig)
		txManager = postgres.NewTransactionManager(pool)
	}

	// Create services
	courseService := serviceCatalog.NewCourseService(courseRepo, subjectRepo, logger)
	subjectService := serviceCatalog.NewSubjectService(subjectRepo, courseRepo, folderRepo, logger)
	folderService := serviceCatalog.NewFolderService(folderRepo, subjectRepo, quizRepo, txManager, logger)
	quizService := serviceCatalog.NewQuizService(quizRepo, folderRepo, logger)
	treeService := serviceCatalog.NewTreeService(courseRepo, subjectRepo, folderRepo, quizRepo, logger)
	quizImporter := serviceCatalog.NewQuizImporter(quizService, logger)
	quizGenerator := serviceCatalog.NewMockQuizGenerator(quizService, logger)

	// Batch move orchestrator
	itemMover := serviceCatalog.NewItemMover(subjectRepo, folderRepo, quizRepo, logger)
	orchestrator := content.NewOrchestrator(itemMover, logger)

	// Create handlers
	courseHandler := handler.NewCourseHandler(courseService, logger)
	subjectHandler := handler.NewSubjectHandler(subjectService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	quizHandler := handler.NewQuizHandler(quizService, quizImporter, quizGenerator, logger)
	treeHandler := handler.NewTreeHandler(treeService, logger)
	moveHandler := handler.NewMoveHandler(orchestrator, treeService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", treeHandler.HealthCheck)

	// Tree and container views
	mux.HandleFunc("GET /api/tree", treeHandler.GetTree)
	mux.HandleFunc("GET /api/containers", treeHandler.GetContainers)

	// Course routes
	mux.HandleFunc("GET /api/courses", courseHandler.ListCourses)
	mux.HandleFunc("GET /api/courses/{id}", courseHandler.GetCourse)
	mux.Handle("POST /api/courses", middleware.RequireAdmin(http.HandlerFunc(courseHandler.CreateCourse)))
	mux.Handle("PATCH /api/courses/{id}", middleware.RequireAdmin(http.HandlerFunc(courseHandler.UpdateCourse)))
	mux.Handle("DELETE /api/courses/{id}", middleware.RequireAdmin(http.HandlerFunc(courseHandler.DeleteCourse)))

	// Subject routes
	mux.HandleFunc("GET /api/subjects", subjectHandler.ListSubjects)
	mux.HandleFunc("GET /api/subjects/{id}", subjectHandler.GetSubject)
	mux.Handle("POST /api/subjects", middleware.RequireAdmin(http.HandlerFunc(subjectHandler.CreateSubject)))
	mux.Handle("PATCH /api/subjects/{id}", middleware.RequireAdmin(http.HandlerFunc(subjectHandler.UpdateSubject)))
	mux.Handle("DELETE /api/subjects/{id}", middleware.RequireAdmin(http.HandlerFunc(subjectHandler.DeleteSubject)))

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.Handle("POST /api/folders", middleware.RequireAdmin(http.HandlerFunc(folderHandler.CreateFolder)))
	mux.Handle("PATCH /api/folders/{id}", middleware.RequireAdmin(http.HandlerFunc(folderHandler.UpdateFolder)))
	mux.Handle("DELETE /api/folders/{id}", middleware.RequireAdmin(http.HandlerFunc(folderHandler.DeleteFolder)))

	// Quiz routes
	mux.HandleFunc("GET /api/quizzes", quizHandler.ListQuizzes)
	mux.HandleFunc("GET /api/quizzes/{id}", quizHandler.GetQuiz)
	mux.Handle("POST /api/quizzes", middleware.RequireAdmin(http.HandlerFunc(quizHandler.CreateQuiz)))
	mux.Handle("PATCH /api/quizzes/{id}", middleware.RequireAdmin(http.HandlerFunc(quizHandler.UpdateQuiz)))
	mux.Handle("DELETE /api/quizzes/{id}", middleware.RequireAdmin(http.HandlerFunc(quizHandler.DeleteQuiz)))
	mux.Handle("POST /api/quizzes/import", middleware.RequireAdmin(http.HandlerFunc(quizHandler.ImportQuiz)))
	mux.Handle("POST /api/quizzes/generate", middleware.RequireAdmin(http.HandlerFunc(quizHandler.GenerateQuiz)))

	// Selection and batch move routes
	mux.HandleFunc("GET /api/content/selection", moveHandler.GetSelection)
	mux.Handle("POST /api/content/selection", middleware.RequireAdmin(http.HandlerFunc(moveHandler.Select)))
	mux.Handle("DELETE /api/content/selection", middleware.RequireAdmin(http.HandlerFunc(moveHandler.ClearSelection)))
	mux.Handle("POST /api/content/move", middleware.RequireAdmin(http.HandlerFunc(moveHandler.Move)))
	mux.Handle("POST /api/content/transfer", middleware.RequireAdmin(http.HandlerFunc(moveHandler.Transfer)))

	// Build middleware chain
	var rootHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS -> Recovery -> Auth -> Routes
	rootHandler = middleware.AuthMiddleware(jwtVerifier, logger)(rootHandler)
	rootHandler = middleware.Recovery(logger)(rootHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	rootHandler = corsHandler.Handler(rootHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      rootHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
