package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"medquiz/internal/content"
	models "medquiz/internal/domain/models/catalog"
	catalogRepo "medquiz/internal/domain/repositories/catalog"
	catalogSvc "medquiz/internal/domain/services/catalog"
	"medquiz/internal/repository/memory"
)

func moveTarget(itemType models.ItemType, id string) content.Target {
	return content.Target{Type: itemType, ID: id}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixtures struct {
	courseRepo  catalogRepo.CourseRepository
	subjectRepo catalogRepo.SubjectRepository
	folderRepo  catalogRepo.FolderRepository
	quizRepo    catalogRepo.QuizRepository
	tree        catalogSvc.TreeService
}

func newFixtures() *fixtures {
	f := &fixtures{
		courseRepo:  memory.NewCourseRepository(),
		subjectRepo: memory.NewSubjectRepository(),
		folderRepo:  memory.NewFolderRepository(),
		quizRepo:    memory.NewQuizRepository(),
	}
	f.tree = NewTreeService(f.courseRepo, f.subjectRepo, f.folderRepo, f.quizRepo, testLogger())
	return f
}

// seed builds course -> subject -> folder -> (subfolder, quiz).
func (f *fixtures) seed(t *testing.T) (course models.Course, subject models.Subject, folder, subfolder models.Folder, quiz models.Quiz) {
	t.Helper()
	ctx := context.Background()

	course = models.Course{Name: "Anatomy", Order: 1}
	if err := f.courseRepo.Create(ctx, &course); err != nil {
		t.Fatalf("seed course: %v", err)
	}

	subject = models.Subject{Name: "Histology", CourseID: &course.ID, Order: 1}
	if err := f.subjectRepo.Create(ctx, &subject); err != nil {
		t.Fatalf("seed subject: %v", err)
	}

	folder = models.Folder{Name: "Partial 1", SubjectID: &subject.ID, Order: 1}
	if err := f.folderRepo.Create(ctx, &folder); err != nil {
		t.Fatalf("seed folder: %v", err)
	}

	subfolder = models.Folder{Name: "Imaging", ParentID: &folder.ID, Order: 1}
	if err := f.folderRepo.Create(ctx, &subfolder); err != nil {
		t.Fatalf("seed subfolder: %v", err)
	}

	quiz = models.Quiz{Title: "Cells", FolderID: &folder.ID, Questions: []models.Question{
		{Text: "q", AnswerOptions: []models.AnswerOption{
			{Text: "a", IsCorrect: true},
			{Text: "b"},
		}},
	}}
	if err := f.quizRepo.Create(ctx, &quiz); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}

	return
}

func TestTreeServiceGetContainers(t *testing.T) {
	f := newFixtures()
	course, subject, folder, subfolder, _ := f.seed(t)

	containers, err := f.tree.GetContainers(context.Background())
	if err != nil {
		t.Fatalf("GetContainers: %v", err)
	}
	if len(containers) != 4 {
		t.Fatalf("expected 4 containers, got %d", len(containers))
	}

	byID := make(map[string]models.Container)
	for _, c := range containers {
		byID[c.ID] = c
	}
	if byID[course.ID].ParentID != nil {
		t.Error("course should be a root container")
	}
	if p := byID[subject.ID].ParentID; p == nil || *p != course.ID {
		t.Errorf("subject parent = %v, want course", p)
	}
	if p := byID[folder.ID].ParentID; p == nil || *p != subject.ID {
		t.Errorf("folder parent = %v, want subject", p)
	}
	if p := byID[subfolder.ID].ParentID; p == nil || *p != folder.ID {
		t.Errorf("subfolder parent = %v, want folder", p)
	}
}

func TestTreeServiceGetTree(t *testing.T) {
	f := newFixtures()
	course, subject, folder, subfolder, quiz := f.seed(t)

	tree, err := f.tree.GetTree(context.Background())
	if err != nil {
		t.Fatalf("GetTree: %v", err)
	}

	if len(tree.Containers) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree.Containers))
	}
	root := tree.Containers[0]
	if root.ID != course.ID {
		t.Fatalf("root = %s, want course %s", root.ID, course.ID)
	}
	if len(root.Children) != 1 || root.Children[0].ID != subject.ID {
		t.Fatalf("course children = %+v, want the subject", root.Children)
	}
	subjectNode := root.Children[0]
	if len(subjectNode.Children) != 1 || subjectNode.Children[0].ID != folder.ID {
		t.Fatalf("subject children = %+v, want the folder", subjectNode.Children)
	}
	folderNode := subjectNode.Children[0]
	if len(folderNode.Children) != 1 || folderNode.Children[0].ID != subfolder.ID {
		t.Errorf("folder children = %+v, want the subfolder", folderNode.Children)
	}
	if len(folderNode.Quizzes) != 1 || folderNode.Quizzes[0].ID != quiz.ID {
		t.Fatalf("folder quizzes = %+v, want the quiz", folderNode.Quizzes)
	}
	if folderNode.Quizzes[0].QuestionCount != 1 {
		t.Errorf("QuestionCount = %d, want 1", folderNode.Quizzes[0].QuestionCount)
	}
}

func TestTreeServiceOrphanSurfacesAtRoot(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()

	missing := "gone"
	folder := models.Folder{Name: "Orphan", SubjectID: &missing}
	if err := f.folderRepo.Create(ctx, &folder); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tree, err := f.tree.GetTree(ctx)
	if err != nil {
		t.Fatalf("GetTree: %v", err)
	}
	if len(tree.Containers) != 1 || tree.Containers[0].ID != folder.ID {
		t.Errorf("orphan folder should surface at root, got %+v", tree.Containers)
	}
}

func TestMoverEndToEnd(t *testing.T) {
	f := newFixtures()
	ctx := context.Background()
	_, subject, folder, subfolder, quiz := f.seed(t)

	mover := NewItemMover(f.subjectRepo, f.folderRepo, f.quizRepo, testLogger())

	t.Run("quiz into subfolder", func(t *testing.T) {
		err := mover.MoveItem(ctx,
			models.ItemRef{Type: models.TypeQuiz, ID: quiz.ID},
			moveTarget(models.TypeFolder, subfolder.ID))
		if err != nil {
			t.Fatalf("MoveItem: %v", err)
		}
		got, _ := f.quizRepo.GetByID(ctx, quiz.ID)
		if got.FolderID == nil || *got.FolderID != subfolder.ID {
			t.Errorf("quiz folder = %v, want %s", got.FolderID, subfolder.ID)
		}
	})

	t.Run("folder under subject writes subject linkage", func(t *testing.T) {
		err := mover.MoveItem(ctx,
			models.ItemRef{Type: models.TypeFolder, ID: subfolder.ID},
			moveTarget(models.TypeSubject, subject.ID))
		if err != nil {
			t.Fatalf("MoveItem: %v", err)
		}
		got, _ := f.folderRepo.GetByID(ctx, subfolder.ID)
		if got.SubjectID == nil || *got.SubjectID != subject.ID {
			t.Errorf("folder subject = %v, want %s", got.SubjectID, subject.ID)
		}
		if got.ParentID != nil {
			t.Errorf("folder parent = %v, want nil", *got.ParentID)
		}
	})

	t.Run("folder under folder writes parent linkage", func(t *testing.T) {
		err := mover.MoveItem(ctx,
			models.ItemRef{Type: models.TypeFolder, ID: subfolder.ID},
			moveTarget(models.TypeFolder, folder.ID))
		if err != nil {
			t.Fatalf("MoveItem: %v", err)
		}
		got, _ := f.folderRepo.GetByID(ctx, subfolder.ID)
		if got.ParentID == nil || *got.ParentID != folder.ID {
			t.Errorf("folder parent = %v, want %s", got.ParentID, folder.ID)
		}
		if got.SubjectID != nil {
			t.Errorf("folder subject = %v, want nil", *got.SubjectID)
		}
	})
}
