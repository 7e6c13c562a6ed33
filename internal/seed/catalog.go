package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	models "medquiz/internal/domain/models/catalog"
	catalogRepo "medquiz/internal/domain/repositories/catalog"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Catalog is the root of a seed file.
type Catalog struct {
	Courses []CourseSeed `yaml:"courses"`
}

// CourseSeed declares a course and everything beneath it.
type CourseSeed struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Icon        string        `yaml:"icon,omitempty"`
	Order       int           `yaml:"order,omitempty"`
	Subjects    []SubjectSeed `yaml:"subjects,omitempty"`
}

// SubjectSeed declares a subject under a course.
type SubjectSeed struct {
	Name    string       `yaml:"name"`
	Icon    string       `yaml:"icon,omitempty"`
	Order   int          `yaml:"order,omitempty"`
	Folders []FolderSeed `yaml:"folders,omitempty"`
}

// FolderSeed declares a folder. Folders nest arbitrarily deep.
type FolderSeed struct {
	Name    string       `yaml:"name"`
	Order   int          `yaml:"order,omitempty"`
	Folders []FolderSeed `yaml:"folders,omitempty"`
	Quizzes []QuizSeed   `yaml:"quizzes,omitempty"`
}

// QuizSeed declares a quiz inside a folder.
type QuizSeed struct {
	Title     string         `yaml:"title"`
	Questions []QuestionSeed `yaml:"questions"`
}

// QuestionSeed declares a single multiple-choice question.
type QuestionSeed struct {
	Text    string       `yaml:"text"`
	Hint    string       `yaml:"hint,omitempty"`
	Options []OptionSeed `yaml:"options"`
}

// OptionSeed declares one answer option.
type OptionSeed struct {
	Text      string `yaml:"text"`
	Correct   bool   `yaml:"correct,omitempty"`
	Rationale string `yaml:"rationale,omitempty"`
}

// DefaultCatalog parses the embedded seed file.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// ParseCatalog parses a YAML seed file.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing seed catalog: %w", err)
	}
	return &cat, nil
}

// CatalogSeeder writes a seed catalog through the repository layer, so
// the same seeder works against Postgres and the in-memory store.
type CatalogSeeder struct {
	courseRepo  catalogRepo.CourseRepository
	subjectRepo catalogRepo.SubjectRepository
	folderRepo  catalogRepo.FolderRepository
	quizRepo    catalogRepo.QuizRepository
	logger      *slog.Logger
}

// NewCatalogSeeder creates a new catalog seeder
func NewCatalogSeeder(
	courseRepo catalogRepo.CourseRepository,
	subjectRepo catalogRepo.SubjectRepository,
	folderRepo catalogRepo.FolderRepository,
	quizRepo catalogRepo.QuizRepository,
	logger *slog.Logger,
) *CatalogSeeder {
	return &CatalogSeeder{
		courseRepo:  courseRepo,
		subjectRepo: subjectRepo,
		folderRepo:  folderRepo,
		quizRepo:    quizRepo,
		logger:      logger,
	}
}

// Seed creates every entity in the catalog, parents before children.
func (s *CatalogSeeder) Seed(ctx context.Context, cat *Catalog) error {
	for _, courseSeed := range cat.Courses {
		course := &models.Course{
			Name:        courseSeed.Name,
			Description: courseSeed.Description,
			Icon:        courseSeed.Icon,
			Order:       courseSeed.Order,
		}
		if err := s.courseRepo.Create(ctx, course); err != nil {
			return fmt.Errorf("seeding course %q: %w", courseSeed.Name, err)
		}
		s.logger.Info("seeded course", "name", course.Name, "id", course.ID)

		for _, subjectSeed := range courseSeed.Subjects {
			courseID := course.ID
			subject := &models.Subject{
				Name:     subjectSeed.Name,
				CourseID: &courseID,
				Icon:     subjectSeed.Icon,
				Order:    subjectSeed.Order,
			}
			if err := s.subjectRepo.Create(ctx, subject); err != nil {
				return fmt.Errorf("seeding subject %q: %w", subjectSeed.Name, err)
			}

			for _, folderSeed := range subjectSeed.Folders {
				if err := s.seedFolder(ctx, folderSeed, nil, &subject.ID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// seedFolder creates a folder and recurses into its children. Exactly
// one of parentID and subjectID is set.
func (s *CatalogSeeder) seedFolder(ctx context.Context, folderSeed FolderSeed, parentID, subjectID *string) error {
	folder := &models.Folder{
		Name:      folderSeed.Name,
		ParentID:  parentID,
		SubjectID: subjectID,
		Order:     folderSeed.Order,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return fmt.Errorf("seeding folder %q: %w", folderSeed.Name, err)
	}

	for _, quizSeed := range folderSeed.Quizzes {
		folderID := folder.ID
		quiz := &models.Quiz{
			Title:     quizSeed.Title,
			FolderID:  &folderID,
			Questions: buildQuestions(quizSeed.Questions),
		}
		if err := s.quizRepo.Create(ctx, quiz); err != nil {
			return fmt.Errorf("seeding quiz %q: %w", quizSeed.Title, err)
		}
	}

	for _, child := range folderSeed.Folders {
		if err := s.seedFolder(ctx, child, &folder.ID, nil); err != nil {
			return err
		}
	}
	return nil
}

func buildQuestions(seeds []QuestionSeed) []models.Question {
	questions := make([]models.Question, 0, len(seeds))
	for _, questionSeed := range seeds {
		question := models.Question{
			Text: questionSeed.Text,
			Hint: questionSeed.Hint,
		}
		for _, optionSeed := range questionSeed.Options {
			question.AnswerOptions = append(question.AnswerOptions, models.AnswerOption{
				Text:      optionSeed.Text,
				IsCorrect: optionSeed.Correct,
				Rationale: optionSeed.Rationale,
			})
		}
		questions = append(questions, question)
	}
	return questions
}
