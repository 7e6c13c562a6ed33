package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"medquiz/internal/domain"
	"medquiz/internal/domain/models/catalog"
	repos "medquiz/internal/domain/repositories/catalog"
)

// PostgresSubjectRepository implements the SubjectRepository interface
type PostgresSubjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(config *RepositoryConfig) repos.SubjectRepository {
	return &PostgresSubjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new subject
func (r *PostgresSubjectRepository) Create(ctx context.Context, subject *catalog.Subject) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, course_id, folder_id, icon, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Subjects)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		subject.Name,
		subject.CourseID,
		subject.FolderID,
		subject.Icon,
		subject.Order,
	).Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("subject '%s': %w", subject.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create subject: %w", err)
	}

	return nil
}

// GetByID retrieves a subject by ID
func (r *PostgresSubjectRepository) GetByID(ctx context.Context, id string) (*catalog.Subject, error) {
	query := fmt.Sprintf(`
		SELECT id, name, course_id, folder_id, icon, sort_order, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Subjects)

	var subject catalog.Subject
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.Name,
		&subject.CourseID,
		&subject.FolderID,
		&subject.Icon,
		&subject.Order,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("subject %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get subject: %w", err)
	}

	return &subject, nil
}

// Update updates a subject
func (r *PostgresSubjectRepository) Update(ctx context.Context, subject *catalog.Subject) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, course_id = $2, folder_id = $3, icon = $4, sort_order = $5, updated_at = NOW()
		WHERE id = $6
	`, r.tables.Subjects)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		subject.Name,
		subject.CourseID,
		subject.FolderID,
		subject.Icon,
		subject.Order,
		subject.ID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("subject '%s': %w", subject.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update subject: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("subject %s: %w", subject.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a subject
func (r *PostgresSubjectRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Subjects)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("cannot delete subject with folders: %w", domain.ErrConflict)
		}
		return fmt.Errorf("delete subject: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("subject %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List retrieves all subjects ordered by sort order then name
func (r *PostgresSubjectRepository) List(ctx context.Context) ([]catalog.Subject, error) {
	query := fmt.Sprintf(`
		SELECT id, name, course_id, folder_id, icon, sort_order, created_at, updated_at
		FROM %s
		ORDER BY sort_order ASC, name ASC
	`, r.tables.Subjects)

	return r.queryList(ctx, query)
}

// ListByCourse retrieves the subjects owned by a course
func (r *PostgresSubjectRepository) ListByCourse(ctx context.Context, courseID string) ([]catalog.Subject, error) {
	query := fmt.Sprintf(`
		SELECT id, name, course_id, folder_id, icon, sort_order, created_at, updated_at
		FROM %s
		WHERE course_id = $1
		ORDER BY sort_order ASC, name ASC
	`, r.tables.Subjects)

	return r.queryList(ctx, query, courseID)
}

// Move reparents a subject under a course. The legacy folder_id
// linkage is cleared so normalization resolves the new parent.
func (r *PostgresSubjectRepository) Move(ctx context.Context, id string, courseID *string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET course_id = $1, folder_id = NULL, updated_at = NOW()
		WHERE id = $2
	`, r.tables.Subjects)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, courseID, id)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("course does not exist: %w", domain.ErrValidation)
		}
		return fmt.Errorf("move subject: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("subject %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresSubjectRepository) queryList(ctx context.Context, query string, args ...interface{}) ([]catalog.Subject, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []catalog.Subject
	for rows.Next() {
		var subject catalog.Subject
		err := rows.Scan(
			&subject.ID,
			&subject.Name,
			&subject.CourseID,
			&subject.FolderID,
			&subject.Icon,
			&subject.Order,
			&subject.CreatedAt,
			&subject.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, subject)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subjects: %w", err)
	}

	return subjects, nil
}
