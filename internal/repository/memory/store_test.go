package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"medquiz/internal/domain"
	"medquiz/internal/domain/models/catalog"
)

func TestStoreCreateAssignsIDAndStamps(t *testing.T) {
	repo := NewCourseRepository()
	ctx := context.Background()

	course := &catalog.Course{Name: "Anatomy"}
	if err := repo.Create(ctx, course); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if course.ID == "" {
		t.Error("expected generated id")
	}
	if course.CreatedAt.IsZero() || course.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := repo.GetByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Anatomy" {
		t.Errorf("Name = %q", got.Name)
	}
}

func TestStoreGetUnknownID(t *testing.T) {
	repo := NewCourseRepository()
	_, err := repo.GetByID(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreListSortsNumerically(t *testing.T) {
	repo := NewCourseRepository()
	ctx := context.Background()

	// Orders 10 and 2 sort numerically, not lexicographically.
	for _, c := range []catalog.Course{
		{Name: "Third", Order: 10},
		{Name: "First", Order: 1},
		{Name: "Second", Order: 2},
	} {
		course := c
		if err := repo.Create(ctx, &course); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	courses, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"First", "Second", "Third"}
	for i, name := range want {
		if courses[i].Name != name {
			t.Errorf("courses[%d] = %q, want %q", i, courses[i].Name, name)
		}
	}
}

func TestStoreDescendingSort(t *testing.T) {
	store := NewStore(Meta[catalog.Quiz]{
		ID:    func(q *catalog.Quiz) string { return q.ID },
		SetID: func(q *catalog.Quiz, id string) { q.ID = id },
		Stamp: func(q *catalog.Quiz, ts time.Time, created bool) {
			if created {
				q.CreatedAt = ts
			}
			q.UpdatedAt = ts
		},
		Fields: func(q *catalog.Quiz) map[string]interface{} {
			return map[string]interface{}{"title": q.Title}
		},
	})

	for _, title := range []string{"Alpha", "Gamma", "Beta"} {
		store.Create(&catalog.Quiz{Title: title})
	}

	quizzes := store.List("-title")
	want := []string{"Gamma", "Beta", "Alpha"}
	for i, title := range want {
		if quizzes[i].Title != title {
			t.Errorf("quizzes[%d] = %q, want %q", i, quizzes[i].Title, title)
		}
	}
}

func TestStoreFilterLooseEquality(t *testing.T) {
	repo := NewQuizRepository()
	ctx := context.Background()
	folderID := "f1"

	inFolder := &catalog.Quiz{Title: "In folder", FolderID: &folderID}
	loose := &catalog.Quiz{Title: "Loose"}
	if err := repo.Create(ctx, inFolder); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, loose); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Pointer field matches its string value.
	quizzes, err := repo.ListByFolder(ctx, "f1")
	if err != nil {
		t.Fatalf("ListByFolder: %v", err)
	}
	if len(quizzes) != 1 || quizzes[0].Title != "In folder" {
		t.Errorf("ListByFolder = %+v", quizzes)
	}
}

func TestStoreUpdateAndDelete(t *testing.T) {
	repo := NewFolderRepository()
	ctx := context.Background()

	folder := &catalog.Folder{Name: "Old"}
	if err := repo.Create(ctx, folder); err != nil {
		t.Fatalf("Create: %v", err)
	}
	created := folder.CreatedAt

	folder.Name = "New"
	if err := repo.Update(ctx, folder); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.GetByID(ctx, folder.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "New" {
		t.Errorf("Name = %q after update", got.Name)
	}
	if !got.CreatedAt.Equal(created) {
		t.Error("CreatedAt changed on update")
	}

	if err := repo.Delete(ctx, folder.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, folder.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestFolderMoveLinkage(t *testing.T) {
	repo := NewFolderRepository()
	ctx := context.Background()
	subjectID := "s1"
	parentID := "fp"

	folder := &catalog.Folder{Name: "Nested", SubjectID: &subjectID}
	if err := repo.Create(ctx, folder); err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("into folder clears subject linkage", func(t *testing.T) {
		if err := repo.Move(ctx, folder.ID, &parentID, catalog.TypeFolder); err != nil {
			t.Fatalf("Move: %v", err)
		}
		got, _ := repo.GetByID(ctx, folder.ID)
		if got.ParentID == nil || *got.ParentID != "fp" {
			t.Errorf("ParentID = %v, want fp", got.ParentID)
		}
		if got.SubjectID != nil {
			t.Errorf("SubjectID = %v, want nil", *got.SubjectID)
		}
	})

	t.Run("into subject clears folder linkage", func(t *testing.T) {
		if err := repo.Move(ctx, folder.ID, &subjectID, catalog.TypeSubject); err != nil {
			t.Fatalf("Move: %v", err)
		}
		got, _ := repo.GetByID(ctx, folder.ID)
		if got.SubjectID == nil || *got.SubjectID != "s1" {
			t.Errorf("SubjectID = %v, want s1", got.SubjectID)
		}
		if got.ParentID != nil {
			t.Errorf("ParentID = %v, want nil", *got.ParentID)
		}
	})

	t.Run("illegal parent type rejected", func(t *testing.T) {
		err := repo.Move(ctx, folder.ID, &subjectID, catalog.TypeCourse)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})
}

func TestSubjectMoveClearsLegacyFolder(t *testing.T) {
	repo := NewSubjectRepository()
	ctx := context.Background()
	folderID := "f1"
	courseID := "c1"

	subject := &catalog.Subject{Name: "Histology", FolderID: &folderID}
	if err := repo.Create(ctx, subject); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Move(ctx, subject.ID, &courseID); err != nil {
		t.Fatalf("Move: %v", err)
	}
	got, _ := repo.GetByID(ctx, subject.ID)
	if got.CourseID == nil || *got.CourseID != "c1" {
		t.Errorf("CourseID = %v, want c1", got.CourseID)
	}
	if got.FolderID != nil {
		t.Errorf("FolderID = %v, want nil", *got.FolderID)
	}
}
