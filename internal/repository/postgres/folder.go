package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"medquiz/internal/domain"
	"medquiz/internal/domain/models/catalog"
	repos "medquiz/internal/domain/repositories/catalog"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repos.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *catalog.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, parent_id, subject_id, course_id, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.SubjectID,
		folder.CourseID,
		folder.Order,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*catalog.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, subject_id, course_id, sort_order, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Folders)

	var folder catalog.Folder
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&folder.ID,
		&folder.Name,
		&folder.ParentID,
		&folder.SubjectID,
		&folder.CourseID,
		&folder.Order,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// Update updates a folder
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *catalog.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, parent_id = $2, subject_id = $3, course_id = $4, sort_order = $5, updated_at = NOW()
		WHERE id = $6
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.SubjectID,
		folder.CourseID,
		folder.Order,
		folder.ID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a folder
func (r *PostgresFolderRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("cannot delete folder with contents: %w", domain.ErrConflict)
		}
		return fmt.Errorf("delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List retrieves all folders ordered by sort order then name
func (r *PostgresFolderRepository) List(ctx context.Context) ([]catalog.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, subject_id, course_id, sort_order, created_at, updated_at
		FROM %s
		ORDER BY sort_order ASC, name ASC
	`, r.tables.Folders)

	return r.queryList(ctx, query)
}

// ListChildren retrieves the immediate subfolders of a folder
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID string) ([]catalog.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, subject_id, course_id, sort_order, created_at, updated_at
		FROM %s
		WHERE parent_id = $1
		ORDER BY sort_order ASC, name ASC
	`, r.tables.Folders)

	return r.queryList(ctx, query, parentID)
}

// Move reparents a folder. Exactly one linkage column holds the new
// parent afterwards; the others are cleared so normalization cannot
// resolve a stale reference.
func (r *PostgresFolderRepository) Move(ctx context.Context, id string, parentID *string, parentType catalog.ItemType) error {
	var query string
	switch parentType {
	case catalog.TypeSubject:
		query = fmt.Sprintf(`
			UPDATE %s
			SET subject_id = $1, parent_id = NULL, course_id = NULL, updated_at = NOW()
			WHERE id = $2
		`, r.tables.Folders)
	case catalog.TypeFolder:
		query = fmt.Sprintf(`
			UPDATE %s
			SET parent_id = $1, subject_id = NULL, course_id = NULL, updated_at = NOW()
			WHERE id = $2
		`, r.tables.Folders)
	default:
		return fmt.Errorf("folder cannot be placed under %q: %w", parentType, domain.ErrValidation)
	}

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, parentID, id)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("destination does not exist: %w", domain.ErrValidation)
		}
		return fmt.Errorf("move folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresFolderRepository) queryList(ctx context.Context, query string, args ...interface{}) ([]catalog.Folder, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []catalog.Folder
	for rows.Next() {
		var folder catalog.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.Name,
			&folder.ParentID,
			&folder.SubjectID,
			&folder.CourseID,
			&folder.Order,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
