package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"medquiz/internal/repository/memory"
)

func TestDefaultCatalogParses(t *testing.T) {
	cat, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	if len(cat.Courses) == 0 {
		t.Fatal("expected at least one course in the default catalog")
	}
	for _, course := range cat.Courses {
		if course.Name == "" {
			t.Error("course with empty name")
		}
	}
}

func TestSeedIntoMemoryStore(t *testing.T) {
	courseRepo := memory.NewCourseRepository()
	subjectRepo := memory.NewSubjectRepository()
	folderRepo := memory.NewFolderRepository()
	quizRepo := memory.NewQuizRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cat, err := ParseCatalog([]byte(`
courses:
  - name: Test Course
    order: 1
    subjects:
      - name: Test Subject
        folders:
          - name: Unit 1
            folders:
              - name: Cases
            quizzes:
              - title: Sample Quiz
                questions:
                  - text: What is 2+2?
                    options:
                      - text: "3"
                      - text: "4"
                        correct: true
`))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}

	seeder := NewCatalogSeeder(courseRepo, subjectRepo, folderRepo, quizRepo, logger)
	if err := seeder.Seed(context.Background(), cat); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	ctx := context.Background()

	courses, err := courseRepo.List(ctx)
	if err != nil {
		t.Fatalf("List courses: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("expected 1 course, got %d", len(courses))
	}

	subjects, err := subjectRepo.List(ctx)
	if err != nil {
		t.Fatalf("List subjects: %v", err)
	}
	if len(subjects) != 1 {
		t.Fatalf("expected 1 subject, got %d", len(subjects))
	}
	if subjects[0].CourseID == nil || *subjects[0].CourseID != courses[0].ID {
		t.Error("subject not linked to its course")
	}

	folders, err := folderRepo.List(ctx)
	if err != nil {
		t.Fatalf("List folders: %v", err)
	}
	if len(folders) != 2 {
		t.Fatalf("expected 2 folders, got %d", len(folders))
	}

	quizzes, err := quizRepo.List(ctx)
	if err != nil {
		t.Fatalf("List quizzes: %v", err)
	}
	if len(quizzes) != 1 {
		t.Fatalf("expected 1 quiz, got %d", len(quizzes))
	}
	if len(quizzes[0].Questions) != 1 {
		t.Errorf("expected 1 question, got %d", len(quizzes[0].Questions))
	}
	if !quizzes[0].Questions[0].AnswerOptions[1].IsCorrect {
		t.Error("correct flag not carried over from seed")
	}
}
