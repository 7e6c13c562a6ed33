package catalog

import (
	"context"
	"errors"
	"testing"

	"medquiz/internal/domain"
	models "medquiz/internal/domain/models/catalog"
	catalogSvc "medquiz/internal/domain/services/catalog"
	"medquiz/internal/repository/memory"
)

func TestFolderServiceDeleteRecursive(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()
	_, _, folder, subfolder, quiz := f.seed(t)

	svc := NewFolderService(f.folderRepo, f.subjectRepo, f.quizRepo, memory.NewTransactionManager(), testLogger())

	if err := svc.DeleteFolder(ctx, folder.ID); err != nil {
		t.Fatalf("DeleteFolder: %v", err)
	}

	for _, id := range []string{folder.ID, subfolder.ID} {
		if _, err := f.folderRepo.GetByID(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("folder %s should be gone, got %v", id, err)
		}
	}
	if _, err := f.quizRepo.GetByID(ctx, quiz.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("quiz should be gone, got %v", err)
	}
}

func TestFolderServiceCreateParentRules(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()
	_, subject, folder, _, _ := f.seed(t)

	svc := NewFolderService(f.folderRepo, f.subjectRepo, f.quizRepo, memory.NewTransactionManager(), testLogger())

	t.Run("no parent rejected", func(t *testing.T) {
		_, err := svc.CreateFolder(ctx, &catalogSvc.CreateFolderRequest{Name: "Loose"})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("both parents rejected", func(t *testing.T) {
		_, err := svc.CreateFolder(ctx, &catalogSvc.CreateFolderRequest{
			Name:      "Torn",
			SubjectID: &subject.ID,
			ParentID:  &folder.ID,
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("subject parent accepted", func(t *testing.T) {
		created, err := svc.CreateFolder(ctx, &catalogSvc.CreateFolderRequest{
			Name:      "Partial 2",
			SubjectID: &subject.ID,
		})
		if err != nil {
			t.Fatalf("CreateFolder: %v", err)
		}
		if created.SubjectID == nil || *created.SubjectID != subject.ID {
			t.Errorf("SubjectID = %v", created.SubjectID)
		}
	})
}

func TestCourseServiceConflicts(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()
	course, _, _, _, _ := f.seed(t)

	svc := NewCourseService(f.courseRepo, f.subjectRepo, testLogger())

	t.Run("duplicate name carries existing resource", func(t *testing.T) {
		_, err := svc.CreateCourse(ctx, &catalogSvc.CreateCourseRequest{Name: "Anatomy"})
		var conflict *domain.ConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("expected ConflictError, got %v", err)
		}
		if conflict.ResourceID != course.ID {
			t.Errorf("ResourceID = %s, want %s", conflict.ResourceID, course.ID)
		}
		if !errors.Is(err, domain.ErrConflict) {
			t.Error("ConflictError should match ErrConflict")
		}
	})

	t.Run("delete with subjects refused", func(t *testing.T) {
		err := svc.DeleteCourse(ctx, course.ID)
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("delete empty course succeeds", func(t *testing.T) {
		empty, err := svc.CreateCourse(ctx, &catalogSvc.CreateCourseRequest{Name: "Pharmacology"})
		if err != nil {
			t.Fatalf("CreateCourse: %v", err)
		}
		if err := svc.DeleteCourse(ctx, empty.ID); err != nil {
			t.Errorf("DeleteCourse: %v", err)
		}
	})
}

func TestQuizServiceQuestionRules(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()
	_, _, folder, _, _ := f.seed(t)

	svc := NewQuizService(f.quizRepo, f.folderRepo, testLogger())

	t.Run("zero correct options rejected", func(t *testing.T) {
		_, err := svc.CreateQuiz(ctx, &catalogSvc.CreateQuizRequest{
			Title:    "Bad",
			FolderID: &folder.ID,
			Questions: []models.Question{
				{Text: "q", AnswerOptions: []models.AnswerOption{{Text: "a"}, {Text: "b"}}},
			},
		})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("unknown folder rejected", func(t *testing.T) {
		missing := "gone"
		_, err := svc.CreateQuiz(ctx, &catalogSvc.CreateQuizRequest{
			Title:    "Bad",
			FolderID: &missing,
			Questions: []models.Question{
				{Text: "q", AnswerOptions: []models.AnswerOption{{Text: "a", IsCorrect: true}, {Text: "b"}}},
			},
		})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("valid quiz created", func(t *testing.T) {
		quiz, err := svc.CreateQuiz(ctx, &catalogSvc.CreateQuizRequest{
			Title:    "Good",
			FolderID: &folder.ID,
			Questions: []models.Question{
				{Text: "q", AnswerOptions: []models.AnswerOption{{Text: "a", IsCorrect: true}, {Text: "b"}}},
			},
		})
		if err != nil {
			t.Fatalf("CreateQuiz: %v", err)
		}
		if quiz.ID == "" {
			t.Error("expected assigned id")
		}
	})
}
