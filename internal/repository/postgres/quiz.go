package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"medquiz/internal/domain"
	"medquiz/internal/domain/models/catalog"
	repos "medquiz/internal/domain/repositories/catalog"
)

// PostgresQuizRepository implements the QuizRepository interface.
// Questions are stored as a JSONB column; the whole array is replaced
// on update.
type PostgresQuizRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(config *RepositoryConfig) repos.QuizRepository {
	return &PostgresQuizRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new quiz
func (r *PostgresQuizRepository) Create(ctx context.Context, quiz *catalog.Quiz) error {
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (title, folder_id, subject_id, questions)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Quizzes)

	err = GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		quiz.Title,
		quiz.FolderID,
		quiz.SubjectID,
		questions,
	).Scan(&quiz.ID, &quiz.CreatedAt, &quiz.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("quiz '%s': %w", quiz.Title, domain.ErrConflict)
		}
		return fmt.Errorf("create quiz: %w", err)
	}

	return nil
}

// GetByID retrieves a quiz by ID, questions included
func (r *PostgresQuizRepository) GetByID(ctx context.Context, id string) (*catalog.Quiz, error) {
	query := fmt.Sprintf(`
		SELECT id, title, folder_id, subject_id, questions, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Quizzes)

	var quiz catalog.Quiz
	var questions []byte
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&quiz.ID,
		&quiz.Title,
		&quiz.FolderID,
		&quiz.SubjectID,
		&questions,
		&quiz.CreatedAt,
		&quiz.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("quiz %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	if err := json.Unmarshal(questions, &quiz.Questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	return &quiz, nil
}

// Update updates a quiz
func (r *PostgresQuizRepository) Update(ctx context.Context, quiz *catalog.Quiz) error {
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, folder_id = $2, subject_id = $3, questions = $4, updated_at = NOW()
		WHERE id = $5
	`, r.tables.Quizzes)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		quiz.Title,
		quiz.FolderID,
		quiz.SubjectID,
		questions,
		quiz.ID,
	)

	if err != nil {
		return fmt.Errorf("update quiz: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("quiz %s: %w", quiz.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a quiz
func (r *PostgresQuizRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Quizzes)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("quiz %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List retrieves all quizzes ordered by title
func (r *PostgresQuizRepository) List(ctx context.Context) ([]catalog.Quiz, error) {
	query := fmt.Sprintf(`
		SELECT id, title, folder_id, subject_id, questions, created_at, updated_at
		FROM %s
		ORDER BY title ASC
	`, r.tables.Quizzes)

	return r.queryList(ctx, query)
}

// ListByFolder retrieves the quizzes in a folder
func (r *PostgresQuizRepository) ListByFolder(ctx context.Context, folderID string) ([]catalog.Quiz, error) {
	query := fmt.Sprintf(`
		SELECT id, title, folder_id, subject_id, questions, created_at, updated_at
		FROM %s
		WHERE folder_id = $1
		ORDER BY title ASC
	`, r.tables.Quizzes)

	return r.queryList(ctx, query, folderID)
}

// Move reparents a quiz into a folder
func (r *PostgresQuizRepository) Move(ctx context.Context, id string, folderID *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET folder_id = $1, updated_at = NOW()
		WHERE id = $2
	`, r.tables.Quizzes)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, folderID, id)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("destination folder does not exist: %w", domain.ErrValidation)
		}
		return fmt.Errorf("move quiz: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("quiz %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresQuizRepository) queryList(ctx context.Context, query string, args ...interface{}) ([]catalog.Quiz, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []catalog.Quiz
	for rows.Next() {
		var quiz catalog.Quiz
		var questions []byte
		err := rows.Scan(
			&quiz.ID,
			&quiz.Title,
			&quiz.FolderID,
			&quiz.SubjectID,
			&questions,
			&quiz.CreatedAt,
			&quiz.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		if err := json.Unmarshal(questions, &quiz.Questions); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quizzes: %w", err)
	}

	return quizzes, nil
}
