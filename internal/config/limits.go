package config

const (
	// MaxCourseNameLength is the maximum length for course names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxCourseNameLength = 255

	// MaxSubjectNameLength is the maximum length for subject names.
	// Same as course names for consistency.
	MaxSubjectNameLength = 255

	// MaxFolderNameLength is the maximum length for folder names.
	// Same as course names for consistency.
	MaxFolderNameLength = 255

	// MaxQuizTitleLength is the maximum length for quiz titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxQuizTitleLength = 255

	// MaxQuestionsPerQuiz caps imported and generated quizzes. Payloads
	// above this are almost always paste mistakes.
	MaxQuestionsPerQuiz = 200

	// MaxOptionsPerQuestion caps answer options per question.
	MaxOptionsPerQuestion = 8

	// DefaultGeneratedQuestions is the question count used when a
	// generation request does not specify one.
	DefaultGeneratedQuestions = 5

	// MaxGeneratedQuestions caps a single generation request.
	MaxGeneratedQuestions = 50
)
