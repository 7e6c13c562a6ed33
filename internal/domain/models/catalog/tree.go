package catalog

// TreeNode is the root of the nested content tree returned to the
// presentation layer.
type TreeNode struct {
	Containers []*ContainerTreeNode `json:"containers"`
}

// ContainerTreeNode is a container with its typed children nested.
// Children holds subjects under a course, folders under a subject and
// subfolders under a folder; Quizzes is populated for folders only and
// always follows the subfolders when the tree is flattened for display.
type ContainerTreeNode struct {
	Container
	Children []*ContainerTreeNode `json:"children"`
	Quizzes  []QuizTreeNode       `json:"quizzes,omitempty"`
}

// QuizTreeNode is a quiz as it appears in the tree (no question bodies).
type QuizTreeNode struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	FolderID      *string `json:"folder_id"`
	QuestionCount int     `json:"question_count"`
}
