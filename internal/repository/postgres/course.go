package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"medquiz/internal/domain"
	"medquiz/internal/domain/models/catalog"
	repos "medquiz/internal/domain/repositories/catalog"
)

// PostgresCourseRepository implements the CourseRepository interface
type PostgresCourseRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(config *RepositoryConfig) repos.CourseRepository {
	return &PostgresCourseRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new course
func (r *PostgresCourseRepository) Create(ctx context.Context, course *catalog.Course) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, icon, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Courses)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		course.Name,
		course.Description,
		course.Icon,
		course.Order,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("course '%s': %w", course.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *PostgresCourseRepository) GetByID(ctx context.Context, id string) (*catalog.Course, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, icon, sort_order, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Courses)

	var course catalog.Course
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.Description,
		&course.Icon,
		&course.Order,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get course: %w", err)
	}

	return &course, nil
}

// Update updates a course
func (r *PostgresCourseRepository) Update(ctx context.Context, course *catalog.Course) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, icon = $3, sort_order = $4, updated_at = NOW()
		WHERE id = $5
	`, r.tables.Courses)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		course.Name,
		course.Description,
		course.Icon,
		course.Order,
		course.ID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("course '%s': %w", course.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course %s: %w", course.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a course
func (r *PostgresCourseRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Courses)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("cannot delete course with subjects: %w", domain.ErrConflict)
		}
		return fmt.Errorf("delete course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List retrieves all courses ordered by sort order then name
func (r *PostgresCourseRepository) List(ctx context.Context) ([]catalog.Course, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, icon, sort_order, created_at, updated_at
		FROM %s
		ORDER BY sort_order ASC, name ASC
	`, r.tables.Courses)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []catalog.Course
	for rows.Next() {
		var course catalog.Course
		err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Description,
			&course.Icon,
			&course.Order,
			&course.CreatedAt,
			&course.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}

	return courses, nil
}
