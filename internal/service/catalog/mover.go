package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"medquiz/internal/content"
	"medquiz/internal/domain"
	models "medquiz/internal/domain/models/catalog"
	catalogRepo "medquiz/internal/domain/repositories/catalog"
)

// itemMover persists reparents on behalf of the move orchestrator.
// Each item type writes its own linkage column; courses are roots and
// never reach this code.
type itemMover struct {
	subjectRepo catalogRepo.SubjectRepository
	folderRepo  catalogRepo.FolderRepository
	quizRepo    catalogRepo.QuizRepository
	logger      *slog.Logger
}

// NewItemMover creates the persistence backend for the orchestrator.
func NewItemMover(
	subjectRepo catalogRepo.SubjectRepository,
	folderRepo catalogRepo.FolderRepository,
	quizRepo catalogRepo.QuizRepository,
	logger *slog.Logger,
) content.ItemMover {
	return &itemMover{
		subjectRepo: subjectRepo,
		folderRepo:  folderRepo,
		quizRepo:    quizRepo,
		logger:      logger,
	}
}

// MoveItem writes the type-appropriate parent linkage.
func (m *itemMover) MoveItem(ctx context.Context, item models.ItemRef, dest content.Target) error {
	var err error
	switch item.Type {
	case models.TypeSubject:
		destID := dest.ID
		err = m.subjectRepo.Move(ctx, item.ID, &destID)
	case models.TypeFolder:
		destID := dest.ID
		err = m.folderRepo.Move(ctx, item.ID, &destID, dest.Type)
	case models.TypeQuiz:
		destID := dest.ID
		err = m.quizRepo.Move(ctx, item.ID, &destID)
	default:
		err = fmt.Errorf("item type %q has no parent linkage: %w", item.Type, domain.ErrValidation)
	}

	if err != nil {
		return err
	}

	m.logger.Debug("item moved", "item", item.Key(), "dest", dest.ID, "dest_type", dest.Type)
	return nil
}
